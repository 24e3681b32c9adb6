/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/scicomp-go/cfem/InputParameters"
	"github.com/scicomp-go/cfem/assemble"
	"github.com/scicomp-go/cfem/expr"
	"github.com/scicomp-go/cfem/form"
	"github.com/scicomp-go/cfem/la"
	"github.com/scicomp-go/cfem/mesh"
	"github.com/scicomp-go/cfem/space"
)

type SolveModel struct {
	InputFile string
	NProc     int
	Profile   bool
	Verbose   bool
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Assemble and solve the variational problem from a YAML input file",
	Long: `Assemble and solve the variational problem from a YAML input file.
The problem is a Helmholtz style bilinear form with a complex coefficient,
discretized with Lagrange elements on a structured unit square mesh, then
solved with a direct LU factorization.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		sm := &SolveModel{}
		if sm.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		sm.NProc, _ = cmd.Flags().GetInt("nproc")
		sm.Profile, _ = cmd.Flags().GetBool("profile")
		sm.Verbose, _ = cmd.Flags().GetBool("verbose")
		pp := processSolveInput(sm)
		if sm.Profile {
			defer profile.Start().Stop()
		}
		if err = RunSolve(sm, pp); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processSolveInput(sm *SolveModel) (pp *InputParameters.ProblemParameters) {
	var (
		err error
	)
	if len(sm.InputFile) == 0 {
		fmt.Printf("error: must supply an input file (-I, --inputFile) in YAML format\n")
		exampleFile := `
########################################
Title: "Helmholtz"
Nx: 10
Ny: 10
PolynomialOrder: 3
Coefficient: "1+j"
RHS: "(1.+j)*A*cos(2*pi*x[0])*cos(2*pi*x[1])"
RHSDegree: 3
Parameters:
  A: 79.95774715459477
KSPType: "preonly"
PCType: "lu"
########################################
`
		fmt.Printf("Example input file contents:%s", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(sm.InputFile); err != nil {
		fmt.Printf("error: unable to read file [%s]: %s\n", sm.InputFile, err.Error())
		os.Exit(1)
	}
	pp = &InputParameters.ProblemParameters{}
	if err = pp.Parse(data); err != nil {
		fmt.Printf("error: unable to parse file [%s]: %s\n", sm.InputFile, err.Error())
		os.Exit(1)
	}
	return
}

func RunSolve(sm *SolveModel, pp *InputParameters.ProblemParameters) (err error) {
	pp.Print()
	nproc := sm.NProc
	if nproc == 0 {
		nproc = pp.ParallelDegree
	}
	if nproc == 0 {
		nproc = runtime.NumCPU()
	}
	params := make(map[string]complex128)
	for name, val := range pp.Parameters {
		params[name] = complex(val, 0)
	}
	coeffSrc := pp.Coefficient
	if coeffSrc == "" {
		coeffSrc = "1"
	}
	var C, f *expr.Expression
	if C, err = expr.Parse(coeffSrc, 0, params); err != nil {
		return
	}
	if f, err = expr.Parse(pp.RHS, pp.RHSDegree, params); err != nil {
		return
	}

	var msh *mesh.Mesh
	if pp.GridFile != "" {
		if msh, err = mesh.ReadGambit(mesh.NewComm(nproc), pp.GridFile); err != nil {
			return
		}
	} else {
		msh = mesh.NewUnitSquare(mesh.NewComm(nproc), pp.Nx, pp.Ny)
	}
	var V *space.FunctionSpace
	if V, err = space.NewLagrange(msh, pp.PolynomialOrder); err != nil {
		return
	}
	if sm.Verbose {
		msh.Print()
	}
	fmt.Printf("Mesh: %d cells, %d vertices\n", msh.K(), msh.NV())
	fmt.Printf("Function space: P%d Lagrange, %d DOFs\n", pp.PolynomialOrder, V.DOFCount())

	u, v := form.Trial(V), form.Test(V)
	aRoot := form.Add(
		form.DX(form.Scale(form.Field(C), form.Inner(form.Grad(u), form.Grad(v)))),
		form.DX(form.Scale(form.Field(C), form.Inner(u, v))),
	)
	LRoot := form.DX(form.Inner(form.Field(f), v))
	var a, L *form.Form
	if a, err = form.NewBilinear(aRoot); err != nil {
		return
	}
	if L, err = form.NewLinear(LRoot); err != nil {
		return
	}

	var asm *assemble.Assembler
	if asm, err = assemble.NewAssembler(a, L); err != nil {
		return
	}
	start := time.Now()
	var (
		A *la.CCSR
		b la.CVector
	)
	if A, b, err = asm.Assemble(); err != nil {
		return
	}
	fmt.Printf("Assembly: %d nonzeros in %v\n", A.NNZ(), time.Since(start))

	var solver *la.LUSolver
	opts := la.SolverOptions{KSPType: pp.KSPType, PCType: pp.PCType}
	if solver, err = la.NewLUSolver(opts); err != nil {
		return
	}
	start = time.Now()
	if err = solver.SetOperator(A); err != nil {
		return
	}
	x := la.NewCVector(b.Len())
	if err = solver.Solve(x, b); err != nil {
		return
	}
	fmt.Printf("Solve: %v, residual %8.5e\n", time.Since(start), solver.Residual(x, b))
	fmt.Printf("||b||_1  = %10.7f\n", la.Norm(b, la.NormL1))
	fmt.Printf("||b||_2  = %10.7f\n", la.Norm(b, la.NormL2))
	fmt.Printf("||x||_2  = %10.7f\n", la.Norm(x, la.NormL2))
	fmt.Printf("||x||_oo = %10.7f\n", la.Norm(x, la.NormLInf))

	if pp.OutputMesh != "" {
		if err = msh.WriteAVS(pp.OutputMesh); err != nil {
			return
		}
		fmt.Printf("Wrote mesh to [%s]\n", pp.OutputMesh)
	}
	if pp.OutputSolution != "" {
		field := make([]float32, x.Len())
		for i := range field {
			field[i] = float32(real(x.AtVec(i)))
		}
		if err = mesh.WriteAVSSolutionField(field, pp.OutputSolution); err != nil {
			return
		}
		fmt.Printf("Wrote solution field to [%s]\n", pp.OutputSolution)
	}
	return
}

func init() {
	SolveCmd.Flags().StringP("inputFile", "I", "", "YAML input file with problem parameters")
	SolveCmd.Flags().IntP("nproc", "n", 0, "number of parallel assembly partitions, 0 means use all cores")
	SolveCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
	SolveCmd.Flags().BoolP("verbose", "v", false, "print detailed progress")
}

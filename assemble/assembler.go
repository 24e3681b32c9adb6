// Package assemble turns a pair of weak forms into a global complex matrix
// and vector by looping over mesh cells, evaluating local element
// contributions at quadrature points, and scatter-adding them into global
// degrees of freedom. All arithmetic is complex; inner products conjugate
// the test-side operand.
package assemble

import (
	"fmt"
	"sort"
	"sync"

	"github.com/scicomp-go/cfem/form"
	"github.com/scicomp-go/cfem/la"
	"github.com/scicomp-go/cfem/mesh"
	"github.com/scicomp-go/cfem/space"
	"github.com/scicomp-go/cfem/utils"
)

// ShapeMismatchError reports bilinear and linear forms whose function
// spaces disagree in global DOF count.
type ShapeMismatchError struct {
	BilinearDOFs, LinearDOFs int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: bilinear form has %d DOFs, linear form has %d",
		e.BilinearDOFs, e.LinearDOFs)
}

// Assembler assembles one bilinear and one linear form over a shared mesh.
type Assembler struct {
	a, L *form.Form

	trial, test *space.FunctionSpace
	msh         *mesh.Mesh
	quadDegree  int
}

// NewAssembler validates the pair: a must be bilinear, L linear, and every
// referenced function space must carry the same global DOF count.
func NewAssembler(a, L *form.Form) (asm *Assembler, err error) {
	if a == nil || L == nil {
		err = fmt.Errorf("assembler requires both a bilinear and a linear form")
		return
	}
	if a.Rank != 2 {
		err = fmt.Errorf("first form must be bilinear, have rank %d", a.Rank)
		return
	}
	if L.Rank != 1 {
		err = fmt.Errorf("second form must be linear, have rank %d", L.Rank)
		return
	}
	if a.TestSpace.DOFCount() != L.TestSpace.DOFCount() {
		err = &ShapeMismatchError{
			BilinearDOFs: a.TestSpace.DOFCount(),
			LinearDOFs:   L.TestSpace.DOFCount(),
		}
		return
	}
	if a.TrialSpace.DOFCount() != a.TestSpace.DOFCount() {
		err = &ShapeMismatchError{
			BilinearDOFs: a.TrialSpace.DOFCount(),
			LinearDOFs:   L.TestSpace.DOFCount(),
		}
		return
	}
	if a.TrialSpace.Msh != a.TestSpace.Msh || a.TestSpace.Msh != L.TestSpace.Msh {
		err = fmt.Errorf("forms must share one mesh")
		return
	}
	asm = &Assembler{
		a:     a,
		L:     L,
		trial: a.TrialSpace,
		test:  a.TestSpace,
		msh:   a.TestSpace.Msh,
	}
	qa, qL := form.QuadratureDegree(a.Root), form.QuadratureDegree(L.Root)
	if qa > qL {
		asm.quadDegree = qa
	} else {
		asm.quadDegree = qL
	}
	return
}

// SetQuadratureDegree overrides the inferred integration degree.
func (asm *Assembler) SetQuadratureDegree(d int) { asm.quadDegree = d }

// Assemble produces the global matrix and vector. Every cell contributes,
// including cells whose integrand evaluates to zero: the containers always
// have the full DOF dimension and the vector's content never depends on the
// bilinear form.
func (asm *Assembler) Assemble() (A *la.CCSR, b la.CVector, err error) {
	var (
		ndof = asm.test.DOFCount()
		NP   = asm.msh.Comm().Size()
	)
	ADOK := la.NewCDOK(ndof, ndof)
	b = la.NewCVector(ndof)
	if NP == 1 {
		k1, k2 := 0, asm.msh.K()
		asm.assembleRange(k1, k2, ADOK, b)
	} else {
		asm.assembleParallel(NP, ADOK, b)
	}
	A = ADOK.ToCCSR()
	return
}

// assembleRange runs the cell loop for cells [k1,k2), accumulating into the
// given containers.
func (asm *Assembler) assembleRange(k1, k2 int, A *la.CDOK, b la.CVector) {
	var (
		q             = asm.test.Quadrature(asm.quadDegree)
		nq            = q.Len()
		npTest        = asm.test.Np
		npTrial       = asm.trial.Np
		VqT, DrT, DsT = asm.test.BasisTable(q)
		VqU, DrU, DsU = asm.trial.BasisTable(q)
		ctx           evalCtx
		Aloc          = make([]complex128, npTest*npTrial)
		bloc          = make([]complex128, npTest)
	)
	for k := k1; k < k2; k++ {
		var (
			g    = asm.msh.Geometry(k)
			l2gT = asm.test.LocalToGlobal(k)
			l2gU = asm.trial.LocalToGlobal(k)
		)
		for i := range Aloc {
			Aloc[i] = 0
		}
		for i := range bloc {
			bloc[i] = 0
		}
		for iq := 0; iq < nq; iq++ {
			wq := q.W.DataP[iq] * g.DetJ
			ctx.x, ctx.y = g.ToPhysical(q.R.DataP[iq], q.S.DataP[iq])
			// Linear form: test functions only
			for i := 0; i < npTest; i++ {
				ctx.testV = VqT.DataP[iq*npTest+i]
				ctx.testG = physicalGrad(g, DrT.DataP[iq*npTest+i], DsT.DataP[iq*npTest+i])
				bloc[i] += complex(wq, 0) * evalNode(asm.L.Root, &ctx)
			}
			// Bilinear form: trial x test
			for i := 0; i < npTest; i++ {
				ctx.testV = VqT.DataP[iq*npTest+i]
				ctx.testG = physicalGrad(g, DrT.DataP[iq*npTest+i], DsT.DataP[iq*npTest+i])
				for j := 0; j < npTrial; j++ {
					ctx.trialV = VqU.DataP[iq*npTrial+j]
					ctx.trialG = physicalGrad(g, DrU.DataP[iq*npTrial+j], DsU.DataP[iq*npTrial+j])
					Aloc[i*npTrial+j] += complex(wq, 0) * evalNode(asm.a.Root, &ctx)
				}
			}
		}
		// Scatter-add local contributions into global DOFs
		for i := 0; i < npTest; i++ {
			b.Accumulate(l2gT[i], bloc[i])
			for j := 0; j < npTrial; j++ {
				A.Accumulate(l2gT[i], l2gU[j], Aloc[i*npTrial+j])
			}
		}
	}
}

// assembleParallel splits cells across the communicator's partitions. Each
// partition accumulates into private containers; the results are merged in
// partition order so repeated runs produce bitwise identical sums.
func (asm *Assembler) assembleParallel(NP int, A *la.CDOK, b la.CVector) {
	type contribution struct {
		sender int
		A      *la.CDOK
		b      la.CVector
	}
	var (
		ndof = asm.test.DOFCount()
		pm   = asm.msh.CellPartition()
		mb   = utils.NewMailBox[contribution](NP)
		wg   sync.WaitGroup
	)
	for n := 0; n < NP; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			var (
				k1, k2 = pm.GetBucketRange(n)
				ALoc   = la.NewCDOK(ndof, ndof)
				bLoc   = la.NewCVector(ndof)
			)
			asm.assembleRange(k1, k2, ALoc, bLoc)
			mb.Post(0, []contribution{{sender: n, A: ALoc, b: bLoc}})
		}(n)
	}
	wg.Wait()
	batches := mb.Collect(0, NP)
	sort.Slice(batches, func(a, b int) bool {
		return batches[a][0].sender < batches[b][0].sender
	})
	for _, batch := range batches {
		c := batch[0]
		c.A.Do(func(i, j int, v complex128) {
			A.Accumulate(i, j, v)
		})
		b.Add(c.b)
	}
}

func physicalGrad(g mesh.CellGeometry, dr, ds float64) [2]float64 {
	return [2]float64{
		g.JInvT[0][0]*dr + g.JInvT[0][1]*ds,
		g.JInvT[1][0]*dr + g.JInvT[1][1]*ds,
	}
}

package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type ProblemParameters struct {
	Title           string             `yaml:"Title"`
	GridFile        string             `yaml:"GridFile"`
	Nx              int                `yaml:"Nx"`
	Ny              int                `yaml:"Ny"`
	PolynomialOrder int                `yaml:"PolynomialOrder"`
	Coefficient     string             `yaml:"Coefficient"`
	RHS             string             `yaml:"RHS"`
	RHSDegree       int                `yaml:"RHSDegree"`
	Parameters      map[string]float64 `yaml:"Parameters"`
	KSPType         string             `yaml:"KSPType"`
	PCType          string             `yaml:"PCType"`
	ParallelDegree  int                `yaml:"ParallelDegree"`
	OutputMesh      string             `yaml:"OutputMesh"`
	OutputSolution  string             `yaml:"OutputSolution"`
}

func (pp *ProblemParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, pp); err != nil {
		return err
	}
	return pp.Validate()
}

func (pp *ProblemParameters) Validate() error {
	if pp.GridFile == "" && (pp.Nx <= 0 || pp.Ny <= 0) {
		return fmt.Errorf("mesh dimensions must be positive, have Nx=%d, Ny=%d", pp.Nx, pp.Ny)
	}
	if pp.PolynomialOrder < 1 {
		return fmt.Errorf("polynomial order must be at least 1, have %d", pp.PolynomialOrder)
	}
	if pp.RHS == "" {
		return fmt.Errorf("RHS expression is required")
	}
	if pp.RHSDegree < 0 {
		return fmt.Errorf("RHS quadrature degree must be non-negative, have %d", pp.RHSDegree)
	}
	return nil
}

func (pp *ProblemParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	if pp.GridFile != "" {
		fmt.Printf("[%s]\t\t= Grid File\n", pp.GridFile)
	} else {
		fmt.Printf("[%d x %d]\t\t= Mesh Dimensions\n", pp.Nx, pp.Ny)
	}
	fmt.Printf("[%d]\t\t\t= Polynomial Order\n", pp.PolynomialOrder)
	fmt.Printf("[%s]\t\t= Coefficient\n", pp.Coefficient)
	fmt.Printf("[%s]\t\t= RHS\n", pp.RHS)
	fmt.Printf("[%d]\t\t\t= RHS Degree\n", pp.RHSDegree)
	keys := make([]string, len(pp.Parameters))
	i := 0
	for k := range pp.Parameters {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Parameters[%s] = %v\n", key, pp.Parameters[key])
	}
	if pp.KSPType != "" {
		fmt.Printf("[%s]\t\t= KSP Type\n", pp.KSPType)
	}
	if pp.PCType != "" {
		fmt.Printf("[%s]\t\t\t= PC Type\n", pp.PCType)
	}
	if pp.ParallelDegree > 0 {
		fmt.Printf("[%d]\t\t\t= Parallel Degree\n", pp.ParallelDegree)
	}
}

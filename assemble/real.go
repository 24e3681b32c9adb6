package assemble

import (
	"fmt"

	"github.com/scicomp-go/cfem/la"
	"github.com/scicomp-go/cfem/utils"
)

// AssembleReal runs the same cell loop in real arithmetic, producing a
// sparse CSR matrix and a real vector. It is the fast path for problems
// whose coefficients are purely real; encountering a non-real value during
// evaluation is an error rather than a silent truncation.
func (asm *Assembler) AssembleReal() (A utils.CSR, b utils.Vector, err error) {
	var (
		ndof = asm.test.DOFCount()
	)
	ADOK := la.NewCDOK(ndof, ndof)
	bc := la.NewCVector(ndof)
	asm.assembleRange(0, asm.msh.K(), ADOK, bc)

	ADOKr := utils.NewDOK(ndof, ndof)
	ADOK.Do(func(i, j int, v complex128) {
		if imag(v) != 0 {
			err = fmt.Errorf("real-mode assembly produced non-real matrix entry (%d,%d) = %v", i, j, v)
		}
		ADOKr.Accumulate(i, j, real(v))
	})
	if err != nil {
		return
	}
	b = utils.NewVector(ndof)
	for i, v := range bc.DataP {
		if imag(v) != 0 {
			err = fmt.Errorf("real-mode assembly produced non-real vector entry %d = %v", i, v)
			return
		}
		b.DataP[i] = real(v)
	}
	A = ADOKr.ToCSR()
	return
}

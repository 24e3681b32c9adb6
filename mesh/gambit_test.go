package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const neuTwoTriangles = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
unit square, two cells
PROGRAM:                Gambit     VERSION:  2.0.0
01 Jan 2020
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         2         1         0         2         2
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.00000000000e+00   0.00000000000e+00
         2   1.00000000000e+00   0.00000000000e+00
         3   1.00000000000e+00   1.00000000000e+00
         4   0.00000000000e+00   1.00000000000e+00
ENDOFSECTION
      ELEMENTS/CELLS 2.0.0
         1  3  3         1       2       3
         2  3  3         1       3       4
ENDOFSECTION
`

func TestReadGambit(t *testing.T) {
	writeFixture := func(t *testing.T, contents string) string {
		fileName := filepath.Join(t.TempDir(), "mesh.neu")
		assert.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
		return fileName
	}
	// Two-triangle unit square
	{
		msh, err := ReadGambit(CommSelf, writeFixture(t, neuTwoTriangles))
		assert.NoError(t, err)
		assert.Equal(t, 2, msh.K())
		assert.Equal(t, 4, msh.NV())
		assert.Equal(t, 5, msh.NE())
		assert.InDelta(t, 1., msh.Area(), 1.e-12)
	}
	// Missing file
	{
		_, err := ReadGambit(CommSelf, filepath.Join(t.TempDir(), "missing.neu"))
		assert.Error(t, err)
	}
	// Truncated file
	{
		_, err := ReadGambit(CommSelf, writeFixture(t, "CONTROL INFO\n"))
		assert.Error(t, err)
	}
	// Non-triangle elements
	{
		bad := neuTwoTriangles[:len(neuTwoTriangles)-len("ENDOFSECTION\n")]
		bad = bad[:len(bad)-len("         2  3  3         1       3       4\n")] +
			"         2  2  4         1       3       4       2\nENDOFSECTION\n"
		_, err := ReadGambit(CommSelf, writeFixture(t, bad))
		assert.Error(t, err)
	}
}

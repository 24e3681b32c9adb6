package mesh

import (
	"encoding/binary"
	"os"

	"github.com/notargets/avs/geometry"
)

// ToGraphMesh converts the mesh to the AVS TriMesh form consumed by the
// avs plotting toolchain: flat XY coordinate pairs and int64 vertex triples.
func (msh *Mesh) ToGraphMesh() (gm geometry.TriMesh) {
	gm = geometry.TriMesh{
		XY:       make([]float32, 2*msh.NV()),
		TriVerts: make([][3]int64, msh.K()),
	}
	for i := 0; i < msh.NV(); i++ {
		gm.XY[2*i] = float32(msh.VX.DataP[i])
		gm.XY[2*i+1] = float32(msh.VY.DataP[i])
	}
	for k, cv := range msh.EToV {
		for n := 0; n < 3; n++ {
			gm.TriVerts[k][n] = int64(cv[n])
		}
	}
	return
}

// WriteAVS writes the mesh in the binary AVS TriMesh layout: dimension
// count, triangle vertex indices, then vertex coordinates.
func (msh *Mesh) WriteAVS(fileName string) (err error) {
	var (
		file *os.File
		gm   = msh.ToGraphMesh()
	)
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()

	nDimensions := int64(2)
	if err = binary.Write(file, binary.LittleEndian, nDimensions); err != nil {
		return
	}
	if err = binary.Write(file, binary.LittleEndian, int64(len(gm.TriVerts))); err != nil {
		return
	}
	if err = binary.Write(file, binary.LittleEndian, gm.TriVerts); err != nil {
		return
	}
	if err = binary.Write(file, binary.LittleEndian, int64(len(gm.XY))); err != nil {
		return
	}
	err = binary.Write(file, binary.LittleEndian, gm.XY)
	return
}

// WriteAVSSolutionField appends a scalar field (one value per vertex or per
// DOF) to a solution file in the binary AVS field layout.
func WriteAVSSolutionField(field []float32, fileName string) (err error) {
	var (
		file     *os.File
		lenField = int64(len(field))
	)
	if file, err = os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
		return
	}
	defer file.Close()
	if err = binary.Write(file, binary.LittleEndian, lenField); err != nil {
		return
	}
	err = binary.Write(file, binary.LittleEndian, field)
	return
}

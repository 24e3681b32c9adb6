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
	"os"

	"github.com/spf13/cobra"

	"github.com/scicomp-go/cfem/mesh"
)

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate a structured triangle mesh and write it in AVS format",
	Long: `Generate a structured triangle mesh of the unit square or a rectangle
and write it in the binary AVS format used by the plotting tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		nx, _ := cmd.Flags().GetInt("nx")
		ny, _ := cmd.Flags().GetInt("ny")
		out, _ := cmd.Flags().GetString("output")
		x0, _ := cmd.Flags().GetFloat64("x0")
		y0, _ := cmd.Flags().GetFloat64("y0")
		x1, _ := cmd.Flags().GetFloat64("x1")
		y1, _ := cmd.Flags().GetFloat64("y1")
		if len(out) == 0 {
			fmt.Printf("error: must supply an output file (-o, --output)\n")
			os.Exit(1)
		}
		msh := mesh.NewRectangle(mesh.CommSelf, x0, y0, x1, y1, nx, ny)
		fmt.Printf("Generated mesh: %d cells, %d vertices, %d edges, area %8.5f\n",
			msh.K(), msh.NV(), msh.NE(), msh.Area())
		if err = msh.WriteAVS(out); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("Wrote mesh to [%s]\n", out)
	},
}

func init() {
	MeshCmd.Flags().IntP("nx", "x", 10, "number of quad columns, each split into two triangles")
	MeshCmd.Flags().IntP("ny", "y", 10, "number of quad rows, each split into two triangles")
	MeshCmd.Flags().StringP("output", "o", "", "output file for the AVS mesh")
	MeshCmd.Flags().Float64("x0", 0, "lower left X coordinate")
	MeshCmd.Flags().Float64("y0", 0, "lower left Y coordinate")
	MeshCmd.Flags().Float64("x1", 1, "upper right X coordinate")
	MeshCmd.Flags().Float64("y1", 1, "upper right Y coordinate")
}

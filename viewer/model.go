package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spin/components"
)

// loadModel builds the GPU model for m. Requires an open window.
func loadModel(m components.Model) (rl.Model, error) {
	s := m.Size
	switch m.Shape {
	case components.ShapeCube:
		return rl.LoadModelFromMesh(rl.GenMeshCube(s, s, s)), nil
	case components.ShapeSphere:
		return rl.LoadModelFromMesh(rl.GenMeshSphere(s/2, 32, 32)), nil
	case components.ShapeTorus:
		return rl.LoadModelFromMesh(rl.GenMeshTorus(s/4, s, 32, 32)), nil
	case components.ShapeKnot:
		return rl.LoadModelFromMesh(rl.GenMeshKnot(s/4, s, 64, 128)), nil
	case components.ShapeFile:
		model := rl.LoadModel(m.Path)
		if model.MeshCount == 0 {
			return rl.Model{}, fmt.Errorf("loading model %q: no meshes", m.Path)
		}
		return model, nil
	}
	return rl.Model{}, fmt.Errorf("unknown model shape %q", m.Shape)
}

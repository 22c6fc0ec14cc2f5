package procgen

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// UVSphere builds a Y-up latitude/longitude sphere with outward normals and CCW
// front faces. Segment counts are raised to the minimum that still closes the shape.
func UVSphere(radius float32, widthSegments, heightSegments int) (*core.Mesh, error) {
	if radius < 0 {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, ErrNegativeRadius)
	}
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertCount := (widthSegments + 1) * (heightSegments + 1)
	if vertCount > math.MaxUint16 {
		return nil, fmt.Errorf("sphere %dx%d needs %d vertices, more than 16-bit indices allow",
			widthSegments, heightSegments, vertCount)
	}

	mesh := &core.Mesh{
		Vertices: make([]core.MeshVertex, 0, vertCount),
		Indices:  make([]uint16, 0, widthSegments*heightSegments*6),
	}

	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		phi := v * math32.Pi
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			theta := u * 2 * math32.Pi
			n := mgl32.Vec3{
				-math32.Cos(theta) * math32.Sin(phi),
				math32.Cos(phi),
				math32.Sin(theta) * math32.Sin(phi),
			}
			mesh.Vertices = append(mesh.Vertices, core.MeshVertex{Position: n.Mul(radius), Normal: n})
		}
	}

	stride := widthSegments + 1
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint16(y*stride + x + 1)
			b := uint16(y*stride + x)
			c := uint16((y+1)*stride + x)
			d := uint16((y+1)*stride + x + 1)
			// skip the degenerate triangles at the poles
			if y != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if y != heightSegments-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}
	return mesh, nil
}

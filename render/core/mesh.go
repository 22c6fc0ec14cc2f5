package core

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshVertex matches the vertex inputs of atmosphere.vert.wgsl and basic.wgsl.
type MeshVertex struct {
	Position mgl32.Vec3 `fx:"layout" format:"float3" location:"0"`
	Normal   mgl32.Vec3 `fx:"layout" format:"float3" location:"1"`
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []MeshVertex
	Indices  []uint16
}

func (m *Mesh) VertexBytes() []byte {
	if len(m.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.Vertices[0])), len(m.Vertices)*int(unsafe.Sizeof(MeshVertex{})))
}

// IndexBytes pads to a multiple of 4 bytes as WriteBuffer requires.
func (m *Mesh) IndexBytes() []byte {
	if len(m.Indices) == 0 {
		return nil
	}
	n := len(m.Indices) * 2
	out := make([]byte, (n+3)&^3)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(&m.Indices[0])), n))
	return out
}

// Bounds returns the radius of the smallest origin-centred sphere containing the mesh.
func (m *Mesh) Bounds() float32 {
	var r float32
	for _, v := range m.Vertices {
		if l := v.Position.Len(); l > r {
			r = l
		}
	}
	return r
}

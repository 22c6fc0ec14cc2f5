package core

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// FlareParticle matches the instance attributes of solar_flare.vert.wgsl.
type FlareParticle struct {
	Position   mgl32.Vec3 `fx:"layout" format:"float3" location:"0"`
	Size       float32    `fx:"layout" format:"float" location:"1"`
	Speed      float32    `fx:"layout" format:"float" location:"2"`
	Offset     float32    `fx:"layout" format:"float" location:"3"`
	Activation float32    `fx:"layout" format:"float" location:"4"`
}

// TailParticle matches the instance attributes of comet_tail.vert.wgsl.
// Position lies in the local XY plane; the vertex stage extrudes it along -Z.
type TailParticle struct {
	Position mgl32.Vec3 `fx:"layout" format:"float3" location:"0"`
	Size     float32    `fx:"layout" format:"float" location:"1"`
	Alpha    float32    `fx:"layout" format:"float" location:"2"`
	Progress float32    `fx:"layout" format:"float" location:"3"`
}

// FlareBuffer is a fixed-length, read-only particle field.
type FlareBuffer struct {
	particles []FlareParticle
}

func NewFlareBuffer(particles []FlareParticle) *FlareBuffer {
	cp := make([]FlareParticle, len(particles))
	copy(cp, particles)
	return &FlareBuffer{particles: cp}
}

func (b *FlareBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.particles)
}

func (b *FlareBuffer) At(i int) FlareParticle { return b.particles[i] }

// Bytes returns a copy of the tightly packed instance data for upload.
func (b *FlareBuffer) Bytes() []byte {
	if b.Len() == 0 {
		return nil
	}
	return copyBytes(unsafe.Pointer(&b.particles[0]), len(b.particles)*int(unsafe.Sizeof(FlareParticle{})))
}

type TailBuffer struct {
	particles []TailParticle
}

func NewTailBuffer(particles []TailParticle) *TailBuffer {
	cp := make([]TailParticle, len(particles))
	copy(cp, particles)
	return &TailBuffer{particles: cp}
}

func (b *TailBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.particles)
}

func (b *TailBuffer) At(i int) TailParticle { return b.particles[i] }

func (b *TailBuffer) Bytes() []byte {
	if b.Len() == 0 {
		return nil
	}
	return copyBytes(unsafe.Pointer(&b.particles[0]), len(b.particles)*int(unsafe.Sizeof(TailParticle{})))
}

func copyBytes(p unsafe.Pointer, n int) []byte {
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(p), n))
	return out
}

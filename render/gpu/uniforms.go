package gpu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

func alignTo(n, align int) int { return (n + align - 1) / align * align }

func kindLayout(k core.UniformKind) (align, size int) {
	switch k {
	case core.UniformVec3:
		return 16, 12
	default:
		return 4, 4
	}
}

// UniformLayout returns the byte offset of every declaration under WGSL uniform
// address-space rules, and the padded struct size.
func UniformLayout(decls []core.UniformDecl) (offsets []int, size int) {
	offsets = make([]int, len(decls))
	end := 0
	for i, d := range decls {
		align, sz := kindLayout(d.Kind)
		offsets[i] = alignTo(end, align)
		end = offsets[i] + sz
	}
	return offsets, alignTo(max(end, 1), 16)
}

// PackUniforms writes set into dst following UniformLayout and returns the written slice.
// dst is reused when large enough.
func PackUniforms(dst []byte, set *core.UniformSet) []byte {
	end := 0
	set.Each(func(u *core.Uniform) {
		align, sz := kindLayout(u.Kind)
		end = alignTo(end, align) + sz
	})
	size := alignTo(max(end, 1), 16)
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]
	clear(dst)

	off := 0
	set.Each(func(u *core.Uniform) {
		align, sz := kindLayout(u.Kind)
		off = alignTo(off, align)
		switch u.Kind {
		case core.UniformVec3:
			for j := 0; j < 3; j++ {
				binary.LittleEndian.PutUint32(dst[off+j*4:], math.Float32bits(u.Vec3[j]))
			}
		default:
			binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(u.Float))
		}
		off += sz
	})
	return dst
}

// FrameUniforms matches the WGSL Frame struct.
type FrameUniforms struct {
	View     mgl32.Mat4
	Proj     mgl32.Mat4
	Viewport mgl32.Vec2
	pad      mgl32.Vec2
}

func NewFrameUniforms(view, proj mgl32.Mat4, width, height uint32) FrameUniforms {
	return FrameUniforms{
		View:     view,
		Proj:     proj,
		Viewport: mgl32.Vec2{float32(max(width, 1)), float32(max(height, 1))},
	}
}

func (f FrameUniforms) Bytes() []byte { return toBufferBytes(f) }

// ObjectUniforms matches the WGSL Object struct.
type ObjectUniforms struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat4
}

func NewObjectUniforms(model mgl32.Mat4) ObjectUniforms {
	return ObjectUniforms{Model: model, Normal: model.Mat3().Inv().Transpose().Mat4()}
}

func (o ObjectUniforms) Bytes() []byte { return toBufferBytes(o) }

func toBufferBytes(data any) []byte {
	buf := new(bytes.Buffer)
	readUniformsBytes(reflect.ValueOf(data), buf)
	return buf.Bytes()
}

func readUniformsBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			readUniformsBytes(field.Index(i), buf)
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformsBytes(field.Field(i), buf)
		}

	case reflect.Float32:
		// Float() works on unexported padding fields where Interface() would panic.
		if err := binary.Write(buf, binary.LittleEndian, float32(field.Float())); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	case reflect.Uint32:
		if err := binary.Write(buf, binary.LittleEndian, uint32(field.Uint())); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field.Type()))
	}
}

package gpu

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

func parseFormat(name string) (wgpu.VertexFormat, error) {
	switch name {
	case "float":
		return wgpu.VertexFormatFloat32, nil
	case "float2":
		return wgpu.VertexFormatFloat32x2, nil
	case "float3":
		return wgpu.VertexFormatFloat32x3, nil
	case "float4":
		return wgpu.VertexFormatFloat32x4, nil
	default:
		return 0, fmt.Errorf("unsupported vertex layout format: %q", name)
	}
}

// VertexLayout derives a buffer layout from the `fx:"layout"` tags of a vertex or
// instance struct. Untagged fields still advance the offset.
func VertexLayout(vertexType any, step wgpu.VertexStepMode) (wgpu.VertexBufferLayout, error) {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		return wgpu.VertexBufferLayout{}, fmt.Errorf("vertex type %v is not a struct", t)
	}

	var attributes []wgpu.VertexAttribute
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if "layout" != field.Tag.Get("fx") {
			continue
		}
		format, err := parseFormat(field.Tag.Get("format"))
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%v.%s: %w", t, field.Name, err)
		}
		location, err := strconv.Atoi(field.Tag.Get("location"))
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%v.%s location: %w", t, field.Name, err)
		}
		attributes = append(attributes, wgpu.VertexAttribute{
			ShaderLocation: uint32(location),
			Offset:         uint64(field.Offset),
			Format:         format,
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(t.Size()),
		StepMode:    step,
		Attributes:  attributes,
	}, nil
}

package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformVec3
)

func (k UniformKind) String() string {
	switch k {
	case UniformFloat:
		return "f32"
	case UniformVec3:
		return "vec3<f32>"
	default:
		return fmt.Sprintf("UniformKind(%d)", int(k))
	}
}

// Uniform is a single named shader input. Only the field matching Kind is meaningful.
type Uniform struct {
	Name  string
	Kind  UniformKind
	Float float32
	Vec3  mgl32.Vec3
}

// UniformDecl is one entry of a program's uniform schema. Declaration order is the
// member order of the WGSL uniform struct.
type UniformDecl struct {
	Name    string
	Kind    UniformKind
	Default Uniform
}

func FloatDecl(name string, def float32) UniformDecl {
	return UniformDecl{Name: name, Kind: UniformFloat, Default: Uniform{Name: name, Kind: UniformFloat, Float: def}}
}

func Vec3Decl(name string, def mgl32.Vec3) UniformDecl {
	return UniformDecl{Name: name, Kind: UniformVec3, Default: Uniform{Name: name, Kind: UniformVec3, Vec3: def}}
}

// UniformSet is the per-object instance of a program's uniform schema.
// Every set owns its values; nothing is shared between sets.
type UniformSet struct {
	ordered []*Uniform
	byName  map[string]*Uniform
}

func NewUniformSet(decls []UniformDecl) *UniformSet {
	s := &UniformSet{
		ordered: make([]*Uniform, 0, len(decls)),
		byName:  make(map[string]*Uniform, len(decls)),
	}
	for _, d := range decls {
		u := d.Default
		u.Name = d.Name
		u.Kind = d.Kind
		s.ordered = append(s.ordered, &u)
		s.byName[d.Name] = &u
	}
	return s
}

// Clone returns a deep copy.
func (s *UniformSet) Clone() *UniformSet {
	c := &UniformSet{
		ordered: make([]*Uniform, 0, len(s.ordered)),
		byName:  make(map[string]*Uniform, len(s.ordered)),
	}
	for _, u := range s.ordered {
		cp := *u
		c.ordered = append(c.ordered, &cp)
		c.byName[cp.Name] = &cp
	}
	return c
}

// Get returns the live handle for name. Writes through the handle are visible to the owner.
func (s *UniformSet) Get(name string) (*Uniform, bool) {
	if s == nil {
		return nil, false
	}
	u, ok := s.byName[name]
	return u, ok
}

func (s *UniformSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

func (s *UniformSet) Float(name string) (float32, bool) {
	u, ok := s.Get(name)
	if !ok || u.Kind != UniformFloat {
		return 0, false
	}
	return u.Float, true
}

func (s *UniformSet) Vec3(name string) (mgl32.Vec3, bool) {
	u, ok := s.Get(name)
	if !ok || u.Kind != UniformVec3 {
		return mgl32.Vec3{}, false
	}
	return u.Vec3, true
}

func (s *UniformSet) SetFloat(name string, v float32) error {
	u, ok := s.Get(name)
	if !ok {
		return fmt.Errorf("uniform %q not declared", name)
	}
	if u.Kind != UniformFloat {
		return fmt.Errorf("uniform %q is %s, not f32", name, u.Kind)
	}
	u.Float = v
	return nil
}

func (s *UniformSet) SetVec3(name string, v mgl32.Vec3) error {
	u, ok := s.Get(name)
	if !ok {
		return fmt.Errorf("uniform %q not declared", name)
	}
	if u.Kind != UniformVec3 {
		return fmt.Errorf("uniform %q is %s, not vec3<f32>", name, u.Kind)
	}
	u.Vec3 = v
	return nil
}

// Each visits the uniforms in declaration order.
func (s *UniformSet) Each(fn func(u *Uniform)) {
	for _, u := range s.ordered {
		fn(u)
	}
}

func (s *UniformSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ordered)
}

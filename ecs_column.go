package solarfx

import "reflect"

// column is one component type's storage inside an archetype. data always
// holds a concrete []T so queries can type-assert it back.
type column struct {
	elem reflect.Type
	data any
}

func newColumn(elem reflect.Type) *column {
	return &column{
		elem: elem,
		data: reflect.MakeSlice(reflect.SliceOf(elem), 0, 1).Interface(),
	}
}

func (c *column) len() int {
	return reflect.ValueOf(c.data).Len()
}

func (c *column) get(r row) reflect.Value {
	return reflect.ValueOf(c.data).Index(int(r))
}

func (c *column) set(r row, v reflect.Value) {
	reflect.ValueOf(c.data).Index(int(r)).Set(v)
}

// clear zeroes a row so released components stop referencing their data.
func (c *column) clear(r row) {
	c.set(r, reflect.Zero(c.elem))
}

func (c *column) grow() {
	c.data = reflect.Append(reflect.ValueOf(c.data), reflect.Zero(c.elem)).Interface()
}

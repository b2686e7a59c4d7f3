package engine

import (
	"fmt"
	"reflect"
)

// A cell is a type-erased value slot. It remembers the type of the default
// value it was declared with, so that a mismatched wiring can be rejected
// when the graph is edited rather than failing when a block ticks.
type cell struct {
	declared reflect.Type
	def      any
	current  any
}

func makeCell(defaultValue any) cell {
	if defaultValue == nil {
		panic("port default value must not be nil")
	}

	return cell{
		declared: reflect.TypeOf(defaultValue),
		def:      defaultValue,
	}
}

// load returns the current value, or the default when no value has been
// stored yet.
func (c *cell) load() any {
	if c.current == nil {
		return c.def
	}

	return c.current
}

// store replaces the current value. Storing nil resets the cell to its
// default. A value of the wrong type is a programmer error in the writing
// block, not a recoverable condition.
func (c *cell) store(v any) {
	if v == nil {
		c.current = nil
		return
	}

	if !reflect.TypeOf(v).AssignableTo(c.declared) {
		panic(fmt.Sprintf(
			"cannot store %s in a port declared as %s",
			reflect.TypeOf(v), c.declared))
	}

	c.current = v
}

// reset drops the current value so that load returns the default again.
func (c *cell) reset() {
	c.current = nil
}

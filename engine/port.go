package engine

import (
	"fmt"
	"reflect"
)

// An Output is a value-producing port. Any number of inputs may be wired to
// the same output.
type Output struct {
	name  string
	owner Block
	cell  cell
}

// NewOutput creates an output owned by the given block. The owner may be nil
// for a detached output that is not part of any block.
func NewOutput(owner Block, name string, defaultValue any) *Output {
	return &Output{
		name:  name,
		owner: owner,
		cell:  makeCell(defaultValue),
	}
}

// Name returns the name of the output.
func (o *Output) Name() string {
	return o.name
}

// Owner returns the block the output belongs to, or nil for a detached
// output.
func (o *Output) Owner() Block {
	return o.owner
}

// Type returns the declared value type of the output.
func (o *Output) Type() reflect.Type {
	return o.cell.declared
}

// Value returns the current value of the output, or its default when nothing
// has been set yet.
func (o *Output) Value() any {
	return o.cell.load()
}

// Set stores a new value on the output. The value is observed by downstream
// inputs at their next refresh.
func (o *Output) Set(v any) {
	o.cell.store(v)
}

// An Input is a value-consuming port. It is wired to at most one output.
type Input struct {
	name   string
	source *Output
	cell   cell
}

// NewInput creates an input that reads its default value until it is wired.
func NewInput(name string, defaultValue any) *Input {
	return &Input{
		name: name,
		cell: makeCell(defaultValue),
	}
}

// Name returns the name of the input.
func (in *Input) Name() string {
	return in.name
}

// Type returns the declared value type of the input.
func (in *Input) Type() reflect.Type {
	return in.cell.declared
}

// Source returns the output the input is wired to, or nil when unwired.
func (in *Input) Source() *Output {
	return in.source
}

// Value returns the value fetched at the last refresh, or the default when
// the input is unwired. It does not read the source directly.
func (in *Input) Value() any {
	return in.cell.load()
}

// SetSource wires the input to an output. The output's declared type must be
// assignable to the input's declared type. Passing nil severs the wiring and
// reverts the input to its default value.
func (in *Input) SetSource(o *Output) error {
	if o == nil {
		in.source = nil
		in.cell.reset()
		return nil
	}

	if !o.Type().AssignableTo(in.Type()) {
		return fmt.Errorf("%w: output %s produces %s, input %s expects %s",
			ErrPortTypeMismatch, o.Name(), o.Type(), in.name, in.Type())
	}

	in.source = o

	return nil
}

// refresh copies the current value of the source output into the input. The
// resolver calls it once per tick, before the owning block runs.
func (in *Input) refresh() {
	if in.source == nil {
		return
	}

	in.cell.store(in.source.Value())
}

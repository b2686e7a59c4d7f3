package engine

import (
	"fmt"
	"os"
	"strings"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Block is a node of the dataflow graph. It owns a fixed set of named
// input and output ports and is ticked by the engine once per resolution
// pass, after all of its wired inputs have been refreshed.
//
// Implementations embed *BlockBase, declare their ports in the constructor
// with AddInput and AddOutput, and override Tick:
//
//	type Echo struct {
//		*BlockBase
//	}
//
//	func NewEcho() *Echo {
//		e := &Echo{}
//		e.BlockBase = NewBlockBase("echo", e)
//		e.AddInput("ear", "")
//		e.AddOutput("mouth", "")
//		return e
//	}
//
//	func (e *Echo) Tick() {
//		e.SetOut("mouth", "I heard: "+e.In("ear").(string))
//	}
type Block interface {
	Named

	// ID returns the identity string of the block, in the form
	// "{type-tag}:{instance-token}". It is assigned once at construction and
	// never regenerated.
	ID() string

	Inputs() []*Input
	Outputs() []*Output
	InputByName(name string) *Input
	OutputByName(name string) *Output

	// Tick runs the block logic for the current engine tick.
	Tick()

	restoreID(id string)
}

// BlockBase provides the port bookkeeping and identity that block
// implementations embed.
type BlockBase struct {
	id          string
	displayName string

	inputNames  []string
	inputs      map[string]*Input
	outputNames []string
	outputs     map[string]*Output

	self Block
}

// NewBlockBase creates the base for a new block instance. The type tag
// becomes the first half of the identity string and the initial display
// name. The self argument is the embedding block, needed so that outputs can
// report their owner.
func NewBlockBase(typeTag string, self Block) *BlockBase {
	b := &BlockBase{
		id:          typeTag + ":" + GetIDGenerator().Generate(),
		displayName: typeTag,
		inputs:      make(map[string]*Input),
		outputs:     make(map[string]*Output),
		self:        self,
	}

	return b
}

// ID returns the identity string of the block.
func (b *BlockBase) ID() string {
	return b.id
}

// restoreID replaces the generated identity with an externally supplied one,
// used when a saved graph is reconstructed.
func (b *BlockBase) restoreID(id string) {
	b.id = id
}

// Name returns the display name of the block.
func (b *BlockBase) Name() string {
	return b.displayName
}

// SetName changes the display name of the block.
func (b *BlockBase) SetName(name string) {
	b.displayName = name
}

// TypeTag returns the type half of the identity string.
func (b *BlockBase) TypeTag() string {
	tag, _, _ := strings.Cut(b.id, ":")
	return tag
}

// AddInput declares a new input port. Ports can only be declared during
// construction; the set of ports is fixed afterwards.
func (b *BlockBase) AddInput(name string, defaultValue any) *Input {
	if _, found := b.inputs[name]; found {
		panic("input " + name + " already declared on block " + b.id)
	}

	in := NewInput(name, defaultValue)
	b.inputs[name] = in
	b.inputNames = append(b.inputNames, name)

	return in
}

// AddOutput declares a new output port.
func (b *BlockBase) AddOutput(name string, defaultValue any) *Output {
	if _, found := b.outputs[name]; found {
		panic("output " + name + " already declared on block " + b.id)
	}

	out := NewOutput(b.self, name, defaultValue)
	b.outputs[name] = out
	b.outputNames = append(b.outputNames, name)

	return out
}

// Inputs returns the input ports in declaration order.
func (b *BlockBase) Inputs() []*Input {
	list := make([]*Input, 0, len(b.inputNames))
	for _, name := range b.inputNames {
		list = append(list, b.inputs[name])
	}

	return list
}

// Outputs returns the output ports in declaration order.
func (b *BlockBase) Outputs() []*Output {
	list := make([]*Output, 0, len(b.outputNames))
	for _, name := range b.outputNames {
		list = append(list, b.outputs[name])
	}

	return list
}

// InputByName returns the input port with the given name. It panics when the
// name is not declared on the block.
func (b *BlockBase) InputByName(name string) *Input {
	in, found := b.inputs[name]
	if !found {
		b.reportMissingPort("Input", name, b.inputNames)
		panic("input not found")
	}

	return in
}

// OutputByName returns the output port with the given name. It panics when
// the name is not declared on the block.
func (b *BlockBase) OutputByName(name string) *Output {
	out, found := b.outputs[name]
	if !found {
		b.reportMissingPort("Output", name, b.outputNames)
		panic("output not found")
	}

	return out
}

func (b *BlockBase) reportMissingPort(kind, name string, known []string) {
	errMsg := fmt.Sprintf(
		"%s %s is not available on block %s.\n", kind, name, b.id)
	errMsg += "Available ports include:\n"
	for _, n := range known {
		errMsg += fmt.Sprintf("\t%s\n", n)
	}
	fmt.Fprint(os.Stderr, errMsg)
}

// In returns the current value of the named input.
func (b *BlockBase) In(name string) any {
	return b.InputByName(name).Value()
}

// SetOut stores a new value on the named output.
func (b *BlockBase) SetOut(name string, v any) {
	b.OutputByName(name).Set(v)
}

// Tick is a no-op so that pure pass-through blocks do not have to implement
// it. Blocks with behavior override it.
func (b *BlockBase) Tick() {
}

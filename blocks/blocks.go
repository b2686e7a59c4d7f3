// Package blocks provides a small catalog of stock blocks: logic gates, a
// constant source, a wall-clock oscillator and a tick counter. The engine
// itself knows nothing about them; applications pass Catalog() to
// Engine.WithBlockTypes.
package blocks

import (
	"time"

	"github.com/sarchlab/liveflow/engine"
)

// Catalog returns the block types of this package, ready to register with an
// engine.
func Catalog() []engine.BlockType {
	return []engine.BlockType{
		{Tag: "constant", Factory: func() (engine.Block, error) {
			return NewConstant(), nil
		}},
		{Tag: "not", Factory: func() (engine.Block, error) {
			return NewNot(), nil
		}},
		{Tag: "and", Factory: func() (engine.Block, error) {
			return NewAnd(), nil
		}},
		{Tag: "or", Factory: func() (engine.Block, error) {
			return NewOr(), nil
		}},
		{Tag: "hertz", Factory: func() (engine.Block, error) {
			return NewHertz(), nil
		}},
		{Tag: "counter", Factory: func() (engine.Block, error) {
			return NewCounter(), nil
		}},
	}
}

// A Constant emits a fixed value on its "value" output. The value can be
// changed from outside the tick loop with SetValue.
type Constant struct {
	*engine.BlockBase
}

// NewConstant creates a constant source emitting 0.0.
func NewConstant() *Constant {
	c := &Constant{}
	c.BlockBase = engine.NewBlockBase("constant", c)
	c.AddOutput("value", 0.0)

	return c
}

// SetValue changes the emitted value.
func (c *Constant) SetValue(v float64) {
	c.SetOut("value", v)
}

// A Not inverts its boolean input.
type Not struct {
	*engine.BlockBase
}

// NewNot creates a not gate.
func NewNot() *Not {
	n := &Not{}
	n.BlockBase = engine.NewBlockBase("not", n)
	n.AddInput("a", false)
	n.AddOutput("out", false)

	return n
}

// Tick inverts the input.
func (n *Not) Tick() {
	n.SetOut("out", !n.In("a").(bool))
}

// An And emits the conjunction of its two boolean inputs.
type And struct {
	*engine.BlockBase
}

// NewAnd creates an and gate.
func NewAnd() *And {
	a := &And{}
	a.BlockBase = engine.NewBlockBase("and", a)
	a.AddInput("a", false)
	a.AddInput("b", false)
	a.AddOutput("out", false)

	return a
}

// Tick computes a AND b.
func (a *And) Tick() {
	a.SetOut("out", a.In("a").(bool) && a.In("b").(bool))
}

// An Or emits the disjunction of its two boolean inputs.
type Or struct {
	*engine.BlockBase
}

// NewOr creates an or gate.
func NewOr() *Or {
	o := &Or{}
	o.BlockBase = engine.NewBlockBase("or", o)
	o.AddInput("a", false)
	o.AddInput("b", false)
	o.AddOutput("out", false)

	return o
}

// Tick computes a OR b.
func (o *Or) Tick() {
	o.SetOut("out", o.In("a").(bool) || o.In("b").(bool))
}

// A Hertz emits a wall-clock square wave on its "hertz" output: true during
// the first half of each cycle of the frequency on its "freq" input.
type Hertz struct {
	*engine.BlockBase

	epoch time.Time
}

// NewHertz creates an oscillator at 1 Hz.
func NewHertz() *Hertz {
	h := &Hertz{epoch: time.Now()}
	h.BlockBase = engine.NewBlockBase("hertz", h)
	h.AddInput("freq", 1.0)
	h.AddOutput("hertz", false)

	return h
}

// Tick samples the wave at the current wall-clock time.
func (h *Hertz) Tick() {
	freq := h.In("freq").(float64)
	if freq <= 0 {
		h.SetOut("hertz", false)
		return
	}

	period := time.Duration(float64(time.Second) / freq)
	phase := time.Since(h.epoch) % period

	h.SetOut("hertz", phase < period/2)
}

// A Counter emits the number of times it has been ticked.
type Counter struct {
	*engine.BlockBase

	count int
}

// NewCounter creates a counter starting at 0.
func NewCounter() *Counter {
	c := &Counter{}
	c.BlockBase = engine.NewBlockBase("counter", c)
	c.AddOutput("count", 0)

	return c
}

// Tick increments and publishes the count.
func (c *Counter) Tick() {
	c.count++
	c.SetOut("count", c.count)
}

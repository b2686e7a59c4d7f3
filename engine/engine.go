package engine

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// DefaultTickRate is the target tick rate an engine starts with, in ticks
// per second.
const DefaultTickRate = 42.0

// An Engine owns the live block set and drives it. It resolves the graph
// once per tick so that every block reads inputs computed in the same pass,
// and it runs the self-correcting rate loop that spaces the ticks out in
// wall-clock time.
//
// All graph mutation goes through the engine and is serialized with the tick
// under one mutex, so external callers may add, remove and wire blocks while
// the loop is running without ever exposing a half-mutated graph to the
// resolver.
type Engine struct {
	HookableBase

	mu        sync.Mutex
	catalog   *catalog
	factories []FactoryType
	blocks    []Block

	ticks        uint64
	targetPeriod time.Duration
	measuredRate float64

	runLock sync.Mutex
}

// NewEngine creates an engine with an empty catalog and the default target
// tick rate.
func NewEngine() *Engine {
	return &Engine{
		catalog:      newCatalog(),
		targetPeriod: periodOf(DefaultTickRate),
	}
}

// WithBlockTypes registers block types in the catalog. It panics on a
// duplicate tag; the catalog is append-only.
func (e *Engine) WithBlockTypes(types ...BlockType) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range types {
		e.catalog.add(t)
	}

	return e
}

// WithFactoryTypes registers block-factory handles for enumeration.
func (e *Engine) WithFactoryTypes(types ...FactoryType) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.factories = append(e.factories, types...)

	return e
}

// WithTickRate sets the initial target tick rate.
func (e *Engine) WithTickRate(tps float64) *Engine {
	if err := e.SetTickRate(tps); err != nil {
		log.Panic(err)
	}

	return e
}

// AvailableTypes returns the tags of all registered block types, in
// registration order.
func (e *Engine) AvailableTypes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tags := make([]string, len(e.catalog.tags))
	copy(tags, e.catalog.tags)

	return tags
}

// AvailableFactories returns the tags of all registered factory types.
func (e *Engine) AvailableFactories() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tags := make([]string, 0, len(e.factories))
	for _, f := range e.factories {
		tags = append(tags, f.Tag)
	}

	return tags
}

// AddBlock instantiates a block of the requested type and appends it to the
// live set. It returns ErrUnknownBlockType when the tag is not in the
// catalog and ErrBlockInstantiation when the factory fails; in both cases
// the live set is left untouched.
func (e *Engine) AddBlock(tag string) (Block, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.catalog.instantiate(tag)
	if err != nil {
		return nil, err
	}

	e.blocks = append(e.blocks, b)

	return b, nil
}

// RestoreBlock reconstructs a block from a saved identity string of the form
// "{type-tag}:{instance-token}". The supplied identity is preserved verbatim
// on the restored instance.
func (e *Engine) RestoreBlock(id string) (Block, error) {
	tag, _, found := strings.Cut(id, ":")
	if !found {
		return nil, fmt.Errorf(
			"%w: malformed identity %q", ErrUnknownBlockType, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.catalog.instantiate(tag)
	if err != nil {
		return nil, err
	}

	b.restoreID(id)
	e.blocks = append(e.blocks, b)

	return b, nil
}

// RemoveBlock takes a block out of the live set. Every surviving input that
// was wired to one of the removed block's outputs is severed and reverts to
// its default value.
func (e *Engine) RemoveBlock(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := -1
	for i, b := range e.blocks {
		if b.ID() == id {
			index = i
			break
		}
	}

	if index < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownBlock, id)
	}

	removed := e.blocks[index]
	e.blocks = append(e.blocks[:index], e.blocks[index+1:]...)

	for _, b := range e.blocks {
		for _, in := range b.Inputs() {
			src := in.Source()
			if src != nil && src.Owner() == removed {
				_ = in.SetSource(nil)
			}
		}
	}

	return nil
}

// Blocks returns the live block set in insertion order.
func (e *Engine) Blocks() []Block {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := make([]Block, len(e.blocks))
	copy(list, e.blocks)

	return list
}

// BlockByID returns the live block with the given identity.
func (e *Engine) BlockByID(id string) (Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, b := range e.blocks {
		if b.ID() == id {
			return b, true
		}
	}

	return nil, false
}

// Wire connects the named input of the destination block to the named output
// of the source block. The wiring is validated against the declared port
// types before it takes effect.
func (e *Engine) Wire(dstID, inputName, srcID, outputName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	dst, err := e.findBlock(dstID)
	if err != nil {
		return err
	}

	src, err := e.findBlock(srcID)
	if err != nil {
		return err
	}

	in := findInput(dst, inputName)
	if in == nil {
		return fmt.Errorf("block %s has no input %q", dstID, inputName)
	}

	out := findOutput(src, outputName)
	if out == nil {
		return fmt.Errorf("block %s has no output %q", srcID, outputName)
	}

	return in.SetSource(out)
}

// Unwire severs the named input of a block so it reads its default again.
func (e *Engine) Unwire(blockID, inputName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.findBlock(blockID)
	if err != nil {
		return err
	}

	in := findInput(b, inputName)
	if in == nil {
		return fmt.Errorf("block %s has no input %q", blockID, inputName)
	}

	return in.SetSource(nil)
}

func (e *Engine) findBlock(id string) (Block, error) {
	for _, b := range e.blocks {
		if b.ID() == id {
			return b, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, id)
}

func findInput(b Block, name string) *Input {
	for _, in := range b.Inputs() {
		if in.Name() == name {
			return in
		}
	}

	return nil
}

func findOutput(b Block, name string) *Output {
	for _, out := range b.Outputs() {
		if out.Name() == name {
			return out
		}
	}

	return nil
}

// TickCount returns the number of ticks executed since the engine started.
func (e *Engine) TickCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ticks
}

// TickRate returns the smoothed measured tick rate in ticks per second. It
// lags the configured target while the loop settles.
func (e *Engine) TickRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.measuredRate
}

// TargetTickRate returns the configured target rate in ticks per second.
func (e *Engine) TargetTickRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return float64(time.Second) / float64(e.targetPeriod)
}

// SetTickRate changes the target tick rate. The new period applies from the
// next loop iteration; an in-flight sleep is not affected.
func (e *Engine) SetTickRate(tps float64) error {
	if tps <= 0 {
		return fmt.Errorf("tick rate must be positive, got %f", tps)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.targetPeriod = periodOf(tps)

	return nil
}

func periodOf(tps float64) time.Duration {
	return time.Duration(float64(time.Second) / tps)
}

// Tick runs one full resolution pass synchronously, outside the rate loop.
// Tests and steppable front ends use it; Run calls the same logic.
func (e *Engine) Tick() {
	e.runTick()
}

// runTick executes one resolution pass under the graph mutex and fires the
// tick hooks outside of it, so hooks may call back into the engine.
func (e *Engine) runTick() TickStats {
	e.mu.Lock()
	stats := TickStats{Tick: e.ticks + 1, Rate: e.measuredRate}
	e.mu.Unlock()

	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosTickStart, Item: stats})

	e.mu.Lock()
	e.tickLocked()
	e.ticks++
	stats = TickStats{Tick: e.ticks, Rate: e.measuredRate}
	e.mu.Unlock()

	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosTickEnd, Item: stats})

	return stats
}

// tickLocked resolves the whole live set once. Traversal is post-order and
// depth-first: a block's wired sources run first, then its inputs are
// refreshed, then its own logic runs. Every block is marked resolved before
// its sources are visited, so a cyclic graph terminates; the edge that
// closes a cycle reads the value from the previous tick (or the default)
// instead of the current one. Which edge that is follows from the insertion
// order of the live set and the declaration order of each block's inputs.
func (e *Engine) tickLocked() {
	resolved := make(map[Block]struct{}, len(e.blocks))

	for _, b := range e.blocks {
		if _, done := resolved[b]; !done {
			e.resolve(b, resolved)
		}
	}
}

func (e *Engine) resolve(b Block, resolved map[Block]struct{}) {
	resolved[b] = struct{}{}

	for _, in := range b.Inputs() {
		src := in.Source()
		if src == nil {
			continue
		}

		owner := src.Owner()
		if owner == nil {
			continue
		}

		if _, done := resolved[owner]; !done {
			e.resolve(owner, resolved)
		}
	}

	for _, in := range b.Inputs() {
		in.refresh()
	}

	e.tickBlock(b)
}

// tickBlock isolates a panicking block so that one broken implementation
// cannot take the whole loop down. The failure is reported through
// HookPosBlockError and logged; the block keeps its place in the live set.
func (e *Engine) tickBlock(b Block) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("block %s panicked during tick: %v", b.ID(), r)
			e.InvokeHook(HookCtx{
				Domain: e,
				Pos:    HookPosBlockError,
				Item:   b,
				Detail: r,
			})
		}
	}()

	b.Tick()
}

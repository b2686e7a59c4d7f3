package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownBlockType reports a request for a block type that is not in the
// engine's catalog.
var ErrUnknownBlockType = errors.New("unknown block type")

// ErrBlockInstantiation reports that a known block type failed to construct.
var ErrBlockInstantiation = errors.New("block instantiation failed")

// ErrUnknownBlock reports a reference to a block identity that is not in the
// live set.
var ErrUnknownBlock = errors.New("unknown block")

// ErrPortTypeMismatch reports an attempt to wire an input to an output of an
// incompatible type.
var ErrPortTypeMismatch = errors.New("port type mismatch")

// A BlockType is an opaque handle to a block implementation. The engine only
// tests catalog membership and constructs instances; how handles are
// discovered is up to the embedding application.
type BlockType struct {
	// Tag identifies the type. It becomes the first half of the identity
	// string of every instance.
	Tag string

	// Factory constructs a fresh instance.
	Factory func() (Block, error)
}

// A FactoryType is an opaque handle to a block-factory implementation. The
// engine holds these for enumeration only; constructing blocks through a
// factory is up to the embedding application.
type FactoryType struct {
	Tag string
}

// catalog is the externally populated set of block types the engine can
// instantiate. Tags keep their registration order.
type catalog struct {
	tags  []string
	types map[string]BlockType
}

func newCatalog() *catalog {
	return &catalog{
		types: make(map[string]BlockType),
	}
}

func (c *catalog) add(t BlockType) {
	if t.Tag == "" {
		panic("block type tag must not be empty")
	}
	if t.Factory == nil {
		panic("block type " + t.Tag + " has no factory")
	}
	if _, found := c.types[t.Tag]; found {
		panic("block type " + t.Tag + " already registered")
	}

	c.types[t.Tag] = t
	c.tags = append(c.tags, t.Tag)
}

// instantiate constructs a new block of the requested type. The identity of
// the returned block is freshly generated by the factory.
func (c *catalog) instantiate(tag string) (Block, error) {
	t, found := c.types[tag]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlockType, tag)
	}

	b, err := t.Factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockInstantiation, tag, err)
	}

	if b == nil {
		return nil, fmt.Errorf(
			"%w: %s: factory returned nil", ErrBlockInstantiation, tag)
	}

	return b, nil
}

// Package engine implements a live dataflow graph: blocks with named typed
// ports, wired output-to-input, resolved in dependency order once per tick
// and driven by a self-correcting wall-clock rate loop.
package engine

package engine

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookPosTickStart triggers right before a resolution pass begins.
var HookPosTickStart = &HookPos{Name: "TickStart"}

// HookPosTickEnd triggers after a resolution pass completes.
var HookPosTickEnd = &HookPos{Name: "TickEnd"}

// HookPosBlockError triggers when a block's tick logic panics. The panicking
// block is the Item and the recovered value is the Detail.
var HookPosBlockError = &HookPos{Name: "BlockError"}

// HookCtx is the context that holds all the information about the site that
// a hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// TickStats is the Item carried by TickStart and TickEnd hooks.
type TickStats struct {
	// Tick is the value of the tick counter for the pass.
	Tick uint64

	// Rate is the smoothed measured tick rate at the time of the pass.
	Rate float64
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

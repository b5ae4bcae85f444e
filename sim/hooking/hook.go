// Package hooking lets observers attach to the events of a model without the
// model knowing who is listening.
package hooking

// HookPos names a point in a model where hooks are called, such as the
// completion of an access.
type HookPos struct {
	Name string
}

// HookCtx is passed to every hook call. Domain is the object raising the
// event, Pos tells which event it is and Item carries the event itself.
// Detail is optional extra data.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is implemented by models that raise events.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// Hook receives the events of the models it is attached to.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase keeps the hook list of a model. Embed it to implement
// Hookable.
type HookableBase struct {
	hooks []Hook
}

// NumHooks lets models skip building a HookCtx when nobody listens.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns the attached hooks in attachment order.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// AcceptHook attaches a hook. Attaching the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, attached := range h.hooks {
		if attached == hook {
			panic("hook is already attached")
		}
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook calls every attached hook with ctx, in attachment order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

// Package hooking lets observers attach to points where a simulated
// component does something worth recording.
package hooking

import "reflect"

// HookPos names a point at which a component invokes its hooks.
type HookPos struct {
	Name string
}

// HookCtx tells a hook where it was invoked and what happened there.
type HookCtx struct {
	// Domain is the component that invoked the hook.
	Domain Hookable

	// Pos is the point of invocation. Hooks compare it by pointer.
	Pos *HookPos

	// Item is the data of the event, with a type fixed by Pos.
	Item interface{}
}

// Hookable is implemented by components that accept hooks.
type Hookable interface {
	// AcceptHook adds a hook to the component.
	AcceptHook(hook Hook)

	// NumHooks returns how many hooks the component holds.
	NumHooks() int

	// Hooks returns the hooks the component holds, in the order added.
	Hooks() []Hook
}

// Hook is called by a Hookable component at each hook position.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc turns a plain function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase implements Hookable. Components embed it and call
// InvokeHook.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns how many hooks have been added.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns the hooks in the order they were added.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook adds a hook. Adding an identical comparable hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	// Funcs and structs holding slices or maps cannot be compared with ==.
	if !reflect.TypeOf(hook).Comparable() {
		return
	}

	for _, existing := range h.hookList {
		if existing == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook calls every hook in the order they were added.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

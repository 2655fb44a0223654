package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sliceHook struct {
	names []string
}

func (h sliceHook) Func(HookCtx) {}

type recordingHook struct {
	ctxs []HookCtx
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

var _ = Describe("HookableBase", func() {
	var (
		base *HookableBase
		pos  *HookPos
	)

	BeforeEach(func() {
		base = &HookableBase{}
		pos = &HookPos{Name: "Test"}
	})

	It("should invoke hooks in order", func() {
		var order []string

		base.AcceptHook(HookFunc(func(HookCtx) { order = append(order, "a") }))
		base.AcceptHook(HookFunc(func(HookCtx) { order = append(order, "b") }))

		base.InvokeHook(HookCtx{Pos: pos})

		Expect(order).To(Equal([]string{"a", "b"}))
		Expect(base.NumHooks()).To(Equal(2))
	})

	It("should pass the context to the hook", func() {
		hook := &recordingHook{}
		base.AcceptHook(hook)

		base.InvokeHook(HookCtx{Pos: pos, Item: 42})

		Expect(hook.ctxs).To(HaveLen(1))
		Expect(hook.ctxs[0].Pos).To(BeIdenticalTo(pos))
		Expect(hook.ctxs[0].Item).To(Equal(42))
	})

	It("should panic when a hook is added twice", func() {
		hook := &recordingHook{}
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should accept a hook after a function hook", func() {
		base.AcceptHook(HookFunc(func(HookCtx) {}))

		Expect(func() { base.AcceptHook(&recordingHook{}) }).NotTo(Panic())
		Expect(base.Hooks()).To(HaveLen(2))
	})

	It("should accept value hooks that cannot be compared", func() {
		base.AcceptHook(sliceHook{names: []string{"a"}})

		Expect(func() {
			base.AcceptHook(sliceHook{names: []string{"a"}})
		}).NotTo(Panic())
		Expect(func() { base.AcceptHook(&recordingHook{}) }).NotTo(Panic())
		Expect(base.NumHooks()).To(Equal(3))
	})
})

package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingHook struct {
	positions []string
}

func (h *countingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos.Name)
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

	It("should register hooks", func() {
		base.AcceptHook(&countingHook{})
		base.AcceptHook(&countingHook{})

		Expect(base.NumHooks()).To(Equal(2))
		Expect(base.Hooks()).To(HaveLen(2))
	})

	It("should panic when a hook is registered twice", func() {
		hook := &countingHook{}
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should invoke every hook", func() {
		hook1 := &countingHook{}
		hook2 := &countingHook{}
		base.AcceptHook(hook1)
		base.AcceptHook(hook2)

		base.InvokeHook(HookCtx{Domain: base, Pos: pos})

		Expect(hook1.positions).To(Equal([]string{"Test"}))
		Expect(hook2.positions).To(Equal([]string{"Test"}))
	})
})

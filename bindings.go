package resolver

import "fmt"

type checkpoint struct {
	slots int
	trail int
}

// Bindings is the binding store of a single query run. It is a growable
// array of slots, each either empty or bound to an instance, plus a trail
// of the slots bound since each checkpoint. Frames are pushed and popped
// in strict stack order.
type Bindings struct {
	slots  []Instance
	trail  []int
	frames []checkpoint
}

// NewBindings returns an empty binding store.
func NewBindings() *Bindings {
	return new(Bindings)
}

// Push allocates a frame of size fresh empty slots and records a checkpoint.
func (b *Bindings) Push(size int) {
	b.frames = append(b.frames, checkpoint{slots: len(b.slots), trail: len(b.trail)})
	for range size {
		b.slots = append(b.slots, Instance{})
	}
}

// Pop clears every slot bound since the matching Push, wherever it lives,
// and releases the frame's slots.
func (b *Bindings) Pop() {
	if len(b.frames) == 0 {
		panic("binding store popped without a frame")
	}
	cp := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	for _, slot := range b.trail[cp.trail:] {
		b.slots[slot] = Instance{}
	}
	b.trail = b.trail[:cp.trail]
	clear(b.slots[cp.slots:])
	b.slots = b.slots[:cp.slots]
}

// Instance instantiates the term in the current frame.
func (b *Bindings) Instance(t Term) Instance {
	if len(b.frames) == 0 {
		panic("binding store has no frame")
	}
	return Instance{Term: t, Base: b.frames[len(b.frames)-1].slots}
}

// Len returns the number of allocated slots.
func (b *Bindings) Len() int { return len(b.slots) }

// Depth returns the number of open frames.
func (b *Bindings) Depth() int { return len(b.frames) }

// TrailLen returns the number of bindings on the trail.
func (b *Bindings) TrailLen() int { return len(b.trail) }

// Bound returns the instance the slot is bound to.
func (b *Bindings) Bound(slot int) (Instance, bool) {
	b.check(slot)
	inst := b.slots[slot]
	return inst, !inst.empty()
}

// Resolve follows bindings until it reaches a non-variable or an unbound variable.
func (b *Bindings) Resolve(inst Instance) Instance {
	for {
		v, ok := inst.Term.(Variable)
		if !ok {
			return inst
		}
		slot := inst.Base + int(v)
		b.check(slot)
		next := b.slots[slot]
		if next.empty() {
			return inst
		}
		inst = next
	}
}

// GetData returns the fully instantiated value of the slot.
func (b *Bindings) GetData(slot int) Term {
	return b.Data(Instance{Term: Variable(slot)})
}

// Data substitutes every bound variable of the instance recursively and
// returns a self-contained term. Unbound variables are returned as
// variables numbered by their global slot.
func (b *Bindings) Data(inst Instance) Term {
	inst = b.Resolve(inst)
	switch t := inst.Term.(type) {
	case Variable:
		return Variable(inst.Base + int(t))
	case *Compound:
		args := make([]Term, len(t.Args))
		for i, arg := range t.Args {
			args[i] = b.Data(Instance{Term: arg, Base: inst.Base})
		}
		return &Compound{Args: args}
	default:
		return t
	}
}

func (b *Bindings) bind(slot int, inst Instance) {
	b.check(slot)
	if !b.slots[slot].empty() {
		panic(fmt.Sprintf("binding slot %d is already bound", slot))
	}
	b.slots[slot] = inst
	b.trail = append(b.trail, slot)
}

func (b *Bindings) check(slot int) {
	if slot < 0 || slot >= len(b.slots) {
		panic(fmt.Sprintf("binding slot %d out of range [0, %d)", slot, len(b.slots)))
	}
}

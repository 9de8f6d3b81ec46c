package resolver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	b := NewBindings()
	b.Push(3)
	req.Equal(3, b.Len())
	req.Equal(1, b.Depth())

	x := b.Instance(Variable(1))
	req.Equal(0, x.Base)
	req.True(b.Unify(x, b.Instance(pool.Intern("a"))))
	inst, ok := b.Bound(1)
	req.True(ok)
	req.Equal(pool.Intern("a"), inst.Term)
	req.Equal(1, b.TrailLen())

	b.Push(2)
	req.Equal(5, b.Len())
	req.Equal(3, b.Instance(Variable(0)).Base)
	b.Pop()
	req.Equal(3, b.Len())
	_, ok = b.Bound(1)
	req.True(ok)

	b.Pop()
	req.Equal(0, b.Len())
	req.Equal(0, b.Depth())
	req.Equal(0, b.TrailLen())
}

func TestPopRewindsAncestorBindings(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	b := NewBindings()
	b.Push(2)
	outer := b.Instance(Variable(0))

	b.Push(1)
	req.True(b.Unify(outer, b.Instance(pool.Intern("a"))))
	req.Equal("a", b.Data(outer).String())

	b.Pop()
	_, ok := b.Bound(0)
	req.False(ok)
	req.Equal(Variable(0), b.Data(outer))
}

func TestPopBindingToPoppedFrame(t *testing.T) {
	req := require.New(t)

	b := NewBindings()
	b.Push(1)
	outer := b.Instance(Variable(0))
	b.Push(1)
	req.True(b.Unify(outer, b.Instance(Variable(0))))
	req.Equal(Variable(1), b.Data(outer))
	b.Pop()
	req.Equal([]Instance{{}}, snapshot(b))
}

func TestTrailSoundness(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	atoms := []Term{pool.Intern("a"), pool.Intern("b"), pool.Intern("c")}
	rng := rand.New(rand.NewSource(1))
	b := NewBindings()
	b.Push(4)

	var run func(depth int)
	run = func(depth int) {
		before, size, trail := snapshot(b), b.Len(), b.TrailLen()
		b.Push(rng.Intn(4) + 1)
		for range rng.Intn(6) + 1 {
			slot := Instance{Term: Variable(rng.Intn(b.Len()))}
			if rng.Intn(3) == 0 {
				b.Unify(slot, Instance{Term: Variable(rng.Intn(b.Len()))})
			} else {
				b.Unify(slot, Instance{Term: atoms[rng.Intn(len(atoms))]})
			}
			if depth < 4 && rng.Intn(2) == 0 {
				run(depth + 1)
			}
		}
		b.Pop()
		req.Equal(size, b.Len())
		req.Equal(trail, b.TrailLen())
		req.Equal(before, snapshot(b))
	}
	for range 200 {
		run(0)
	}
}

func TestResolveFollowsChains(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	b := NewBindings()
	b.Push(4)
	for i := range 3 {
		req.True(b.Unify(b.Instance(Variable(i)), b.Instance(Variable(i+1))))
	}
	req.Equal(Instance{Term: Variable(3)}, b.Resolve(b.Instance(Variable(0))))

	req.True(b.Unify(b.Instance(Variable(0)), b.Instance(pool.Intern("end"))))
	req.Equal(pool.Intern("end"), b.Resolve(b.Instance(Variable(0))).Term)
	req.Equal("end", b.GetData(1).String())
}

func TestDataInstantiates(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	left, nl := mustTerm(t, pool, "f(X, g(Y), [X|T])")
	right, nr := mustTerm(t, pool, "f(a, Z, [A, b])")

	b := NewBindings()
	b.Push(nl)
	l := b.Instance(left)
	b.Push(nr)
	r := b.Instance(right)
	req.True(b.Unify(l, r))
	req.Equal("(f a (g _1) [a b])", b.Data(l).String())
	req.Equal(b.Data(l).String(), b.Data(r).String())
	req.Equal("(g _1)", b.Data(r).(*Compound).Args[2].String())
}

func TestBindingsInvariantViolationsPanic(t *testing.T) {
	req := require.New(t)

	req.Panics(func() { NewBindings().Pop() })
	req.Panics(func() { NewBindings().Instance(Variable(0)) })
	req.Panics(func() {
		b := NewBindings()
		b.Push(1)
		b.Resolve(b.Instance(Variable(1)))
	})
	req.Panics(func() {
		b := NewBindings()
		b.Push(1)
		b.bind(0, Instance{Term: Variable(0)})
		b.bind(0, Instance{Term: Variable(0)})
	})
}

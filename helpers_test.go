package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustWorld(t *testing.T, code string, opts ...Option) *World {
	t.Helper()
	p, err := ParseProgram(code)
	require.NoError(t, err)
	w, err := NewWorld(p.Rules, opts...)
	require.NoError(t, err)
	return w
}

func mustQuery(t *testing.T, w *World, code string) *Query {
	t.Helper()
	a, err := ParseQuery(code)
	require.NoError(t, err)
	q, err := w.NewQuery(a.Goals...)
	require.NoError(t, err)
	return q
}

func solve(t *testing.T, w *World, code string) []string {
	t.Helper()
	var r []string
	for sol := range w.Solve(mustQuery(t, w, code)) {
		r = append(r, sol.String())
	}
	return r
}

// mustTerm compiles a single term in its own variable scope.
func mustTerm(t *testing.T, pool *SymbolPool, code string) (Term, int) {
	t.Helper()
	a, err := ParseQuery(code)
	require.NoError(t, err)
	require.Len(t, a.Goals, 1)
	s := newScope(pool.Intern)
	term, err := s.term(a.Goals[0])
	require.NoError(t, err)
	return term, s.n
}

func snapshot(b *Bindings) []Instance {
	r := make([]Instance, b.Len())
	for i := range r {
		r[i], _ = b.Bound(i)
	}
	return r
}

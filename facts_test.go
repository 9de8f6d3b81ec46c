package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYAMLFacts(t *testing.T) {
	req := require.New(t)

	p, err := LoadYAML(strings.NewReader(`predicates:
- functor: parent
  args:
  - ann
  - bob
- functor: parent
  args: [bob, cid]
- functor: sunny
rules: |
  grandparent(X, Z) :- parent(X, Y), parent(Y, Z).
  ?- grandparent(ann, X).
`))
	req.NoError(err)
	req.Len(p.Rules, 4)
	req.Len(p.Queries, 1)
	req.Equal("sunny.", p.Rules[2].String())

	w, err := NewWorld(p.Rules)
	req.NoError(err)
	q, err := w.NewQuery(p.Queries[0].Goals...)
	req.NoError(err)
	sols := w.All(q)
	req.Len(sols, 1)
	req.Equal("X = cid", sols[0].String())
	req.Equal([]string{"yes"}, solve(t, w, "sunny"))
}

func TestYAMLErrors(t *testing.T) {
	req := require.New(t)

	_, err := LoadYAML(strings.NewReader(`predicates:
- args: [a]
`))
	req.ErrorIs(err, ErrIllFormed)

	_, err = LoadYAML(strings.NewReader(`rules: "p(a"`))
	req.Error(err)

	_, err = LoadYAML(strings.NewReader(`predicates: 12`))
	req.Error(err)
}

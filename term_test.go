package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTermString(t *testing.T) {
	pool := NewSymbolPool()
	tests := []struct {
		code, want string
	}{
		{"parent(ann, bob)", "(parent ann bob)"},
		{"[a, b, c]", "[a b c]"},
		{"[a, b|T]", "[a b . _0]"},
		{"[]", "nil"},
		{"f([g(X)], 12, \"two words\")", "(f [(g _0)] 12 two words)"},
		{"!", "cut"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			term, _ := mustTerm(t, pool, tt.code)
			require.Equal(t, tt.want, term.String())
		})
	}
}

func TestListFromTerm(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	term, _ := mustTerm(t, pool, "[a, f(b), c]")
	list, err := ListFromTerm(term)
	req.NoError(err)
	req.Len(list, 3)
	req.Equal("(f b)", list[1].String())

	term, _ = mustTerm(t, pool, "[a|T]")
	_, err = ListFromTerm(term)
	req.Error(err)

	term, _ = mustTerm(t, pool, "f(a, b)")
	_, err = ListFromTerm(term)
	req.Error(err)
}

func TestSymbolPool(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	a := pool.Intern("a")
	req.Same(a, pool.Intern("a"))
	req.NotSame(a, pool.Intern("b"))
	req.NotSame(a, &Atom{Name: "a"})
	req.Equal(2, pool.Len())

	got, ok := pool.Lookup("a")
	req.True(ok)
	req.Same(a, got)
	_, ok = pool.Lookup("c")
	req.False(ok)
	req.Equal(2, pool.Len())
}

func TestScopeNumbering(t *testing.T) {
	req := require.New(t)

	pool := NewSymbolPool()
	term, n := mustTerm(t, pool, "f(X, _, Y, X, _)")
	req.Equal(4, n)
	req.Equal("(f _0 _1 _2 _0 _3)", term.String())

	_, err := newScope(pool.Intern).term(&ASTCompound{})
	req.ErrorIs(err, ErrIllFormed)
	_, err = newScope(pool.Intern).term(nil)
	req.ErrorIs(err, ErrIllFormed)
}

package resolver

import (
	"strconv"
	"strings"
)

// Names with a conventional meaning to the front ends and the engine.
const (
	ConsFunctor = "cons"
	NilAtom     = "nil"
	CutAtom     = "cut"
)

// Term is an immutable node of logic data. Terms are shared between rules,
// queries and solutions and are never copied.
type Term interface {
	String() string
	maxVar() int
}

// Variable is a logical unknown identified by its index within the scope
// (one rule or one query) it was created in.
type Variable int

func (v Variable) String() string { return "_" + strconv.Itoa(int(v)) }

func (v Variable) maxVar() int { return int(v) + 1 }

// Atom is an interned symbol. Atoms are compared by pointer identity.
type Atom struct {
	Name string
}

func (a *Atom) String() string { return a.Name }

func (a *Atom) maxVar() int { return 0 }

// Compound is a fixed-arity structure. The first child conventionally names the functor.
type Compound struct {
	Args []Term
}

// Functor returns the first child if it is an atom.
func (c *Compound) Functor() (*Atom, bool) {
	if len(c.Args) == 0 {
		return nil, false
	}
	a, ok := c.Args[0].(*Atom)
	return a, ok
}

func (c *Compound) maxVar() int {
	n := 0
	for _, arg := range c.Args {
		n = max(n, arg.maxVar())
	}
	return n
}

func (c *Compound) String() string {
	var sb strings.Builder
	if isCons(c) {
		sb.WriteRune('[')
		writeList(&sb, c)
		sb.WriteRune(']')
		return sb.String()
	}
	sb.WriteRune('(')
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(arg.String())
	}
	sb.WriteRune(')')
	return sb.String()
}

func isCons(t Term) bool {
	c, ok := t.(*Compound)
	if !ok || len(c.Args) != 3 {
		return false
	}
	f, ok := c.Functor()
	return ok && f.Name == ConsFunctor
}

func writeList(sb *strings.Builder, c *Compound) {
	for {
		sb.WriteString(c.Args[1].String())
		tail := c.Args[2]
		if isCons(tail) {
			sb.WriteRune(' ')
			c = tail.(*Compound)
			continue
		}
		if a, ok := tail.(*Atom); ok && a.Name == NilAtom {
			return
		}
		sb.WriteString(" . ")
		sb.WriteString(tail.String())
		return
	}
}

// Instance is a term instantiated in a frame: a Variable(n) inside it
// denotes the global binding slot Base+n.
type Instance struct {
	Term Term
	Base int
}

func (i Instance) String() string { return i.Term.String() + "@" + strconv.Itoa(i.Base) }

func (i Instance) empty() bool { return i.Term == nil }

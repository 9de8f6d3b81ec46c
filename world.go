package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrIllFormed signifies a malformed rule, query or source text.
var ErrIllFormed = errors.New("ill-formed input")

// AST is a node of user-authored logic data.
type AST interface {
	fmt.Stringer
}

// ASTExpr is an expression node.
type ASTExpr interface {
	AST
}

// ASTVar is a named variable node.
type ASTVar struct {
	Name string
}

func (v *ASTVar) String() string { return v.Name }

// ASTWildcard is an anonymous variable node. Every occurrence is a fresh variable.
type ASTWildcard struct{}

func (w *ASTWildcard) String() string { return "_" }

// ASTAtom is an atom node.
type ASTAtom struct {
	Name string
}

func (a *ASTAtom) String() string { return a.Name }

// ASTCompound is a compound term node.
type ASTCompound struct {
	Args []ASTExpr
}

func (c *ASTCompound) String() string {
	var sb strings.Builder
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

// ASTRule is a rule node. A rule without a tail is a fact.
type ASTRule struct {
	Head ASTExpr
	Tail []ASTExpr
}

func (r *ASTRule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Head.String())
	for i, t := range r.Tail {
		if i == 0 {
			sb.WriteString(" :- ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteRune('.')
	return sb.String()
}

// ASTQuery is a query node.
type ASTQuery struct {
	Goals []ASTExpr
}

func (q *ASTQuery) String() string {
	var sb strings.Builder
	sb.WriteString("?- ")
	for i, g := range q.Goals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.String())
	}
	sb.WriteRune('.')
	return sb.String()
}

// scope numbers the variables of one rule or one query.
type scope struct {
	vars  map[string]Variable
	names []string
	n     int
	atom  func(string) *Atom
}

func newScope(atom func(string) *Atom) *scope {
	return &scope{vars: make(map[string]Variable), atom: atom}
}

func (s *scope) term(e ASTExpr) (Term, error) {
	switch x := e.(type) {
	case *ASTVar:
		if v, ok := s.vars[x.Name]; ok {
			return v, nil
		}
		v := Variable(s.n)
		s.n++
		s.vars[x.Name] = v
		s.names = append(s.names, x.Name)
		return v, nil
	case *ASTWildcard:
		v := Variable(s.n)
		s.n++
		return v, nil
	case *ASTAtom:
		return s.atom(x.Name), nil
	case *ASTCompound:
		if len(x.Args) == 0 {
			return nil, fmt.Errorf("%w: compound term with no children", ErrIllFormed)
		}
		args := make([]Term, len(x.Args))
		for i, arg := range x.Args {
			t, err := s.term(arg)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &Compound{Args: args}, nil
	case nil:
		return nil, fmt.Errorf("%w: missing term", ErrIllFormed)
	default:
		return nil, fmt.Errorf("%w: unexpected node %T", ErrIllFormed, e)
	}
}

func (s *scope) terms(es []ASTExpr) ([]Term, error) {
	ts := make([]Term, len(es))
	for i, e := range es {
		t, err := s.term(e)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

// Rule is a compiled Horn clause.
type Rule struct {
	Head Term
	Body []Term
	// NumVars is the number of distinct variables of the rule and the size of its frame.
	NumVars int
	goalID  int
}

func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Head.String())
	for i, t := range r.Body {
		if i == 0 {
			sb.WriteString(" :- ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteRune('.')
	return sb.String()
}

// World is a rule database. It is immutable once built and can be shared by concurrent queries.
type World struct {
	rules   []*Rule
	symbols *SymbolPool
	index   *ruleIndex
	cut     *Atom
	log     *logrus.Logger
	noIndex bool
}

// Option configures a world.
type Option func(*World)

// WithLogger sets the logger used for build statistics and resolution traces.
func WithLogger(log *logrus.Logger) Option {
	return func(w *World) { w.log = log }
}

// WithoutIndex makes every goal consider every rule.
func WithoutIndex() Option {
	return func(w *World) { w.noIndex = true }
}

// NewWorld compiles the rules into a world.
func NewWorld(rules []*ASTRule, opts ...Option) (*World, error) {
	w := &World{
		symbols: NewSymbolPool(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cut = w.symbols.Intern(CutAtom)

	goals := 0
	for i, r := range rules {
		if r == nil || r.Head == nil {
			return nil, fmt.Errorf("%w: rule %d has no head", ErrIllFormed, i)
		}
		s := newScope(w.symbols.Intern)
		head, err := s.term(r.Head)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		body, err := s.terms(r.Tail)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		w.rules = append(w.rules, &Rule{Head: head, Body: body, NumVars: s.n, goalID: goals})
		goals += len(body)
	}

	if w.noIndex {
		w.index = newRuleIndex(len(w.rules))
	} else {
		w.index = buildRuleIndex(w.rules)
	}
	w.log.WithFields(logrus.Fields{
		"rules":    len(w.rules),
		"subgoals": goals,
		"symbols":  w.symbols.Len(),
		"indexed":  !w.noIndex,
	}).Debug("world built")
	return w, nil
}

// Rules returns the compiled rules in declaration order.
func (w *World) Rules() []*Rule { return w.rules }

// Symbols returns the world's symbol pool. It must not be used to intern new atoms.
func (w *World) Symbols() *SymbolPool { return w.symbols }

// Query is a compiled conjunction of goals.
type Query struct {
	Goals   []Term
	NumVars int
	names   []string
	vars    map[string]Variable
}

// Vars returns the names of the query's variables in order of first appearance.
func (q *Query) Vars() []string { return q.names }

func (q *Query) String() string {
	var sb strings.Builder
	sb.WriteString("?- ")
	for i, g := range q.Goals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.String())
	}
	sb.WriteRune('.')
	return sb.String()
}

// NewQuery compiles the goals against the world. Atoms unknown to the world
// become query-local atoms which never unify with any rule atom.
func (w *World) NewQuery(goals ...ASTExpr) (*Query, error) {
	local := make(map[string]*Atom)
	s := newScope(func(name string) *Atom {
		if a, ok := w.symbols.Lookup(name); ok {
			return a
		}
		a, ok := local[name]
		if !ok {
			a = &Atom{Name: name}
			local[name] = a
		}
		return a
	})
	ts, err := s.terms(goals)
	if err != nil {
		return nil, err
	}
	return &Query{Goals: ts, NumVars: s.n, names: s.names, vars: s.vars}, nil
}

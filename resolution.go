// Package resolver provides a Prolog-style resolution engine.
// It is embeddable in Go programs and finds every binding of a query's variables
// that makes the query's goals derivable from a database of rules.
//
// # Terms
//
// Logic data is built from three kinds of terms:
//   - variables,
//   - atoms,
//   - compound terms.
//
// The first child of a compound term conventionally names the functor, as in (parent ann bob).
// Lists are compound terms of the form (cons Head Tail) terminated by the atom nil.
//
// # Instances
//
// Terms are immutable and shared. A rule is instantiated for a call by pairing its terms
// with the base offset of a freshly allocated frame of binding slots, so a variable numbered n
// in the rule refers to slot base+n of the call. No term is ever copied during resolution.
//
// # Bindings
//
// Bindings live in a single slot array with a trail recording the order in which slots were bound.
// Every rule invocation pushes a frame and a checkpoint; backtracking pops the frame and clears
// every binding made since the checkpoint, including bindings of variables of outer calls.
//
// # Unification
//
// The process of unification compares the structures of two terms and finds the most general
// substitution that makes them equal, in case one exists. There is no occurs-check, so a variable
// unified with a term containing it produces a cyclic binding which cannot be instantiated.
//
// # Rule index
//
// Each body subgoal of each rule is probed against every rule head when the world is built.
// Only the rules whose heads can unify with the subgoal are ever tried for it.
//
// # Cut
//
// The atom cut (written ! in Prolog syntax) succeeds once. After every alternative of the goals
// that follow it has been explored, all outstanding choice points of the query are discarded,
// not only those of the clause containing the cut.
//
// # Inference
//
// The algorithm used for inference is [SLD-resolution] with depth-first, left-to-right search.
// Rules are tried in declaration order and solutions are produced in that order.
//
// [SLD-resolution]: https://en.wikipedia.org/wiki/SLD_resolution
package resolver

import (
	"context"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/mailstepcz/slice"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Solution is a fully instantiated answer to a query.
type Solution struct {
	// Goals are the query's goals with every bound variable substituted.
	Goals []Term
	// Bindings maps the query's named variables to their values.
	Bindings map[string]Term
	names    []string
}

func (s *Solution) String() string {
	if len(s.names) == 0 {
		return "yes"
	}
	var sb strings.Builder
	for i, name := range s.names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(" = ")
		sb.WriteString(s.Bindings[name].String())
	}
	return sb.String()
}

type goalRef struct {
	inst Instance
	id   int
}

type search struct {
	world    *World
	query    *Query
	bindings *Bindings
	goals    []goalRef
	yield    func(*Solution) bool
	log      *logrus.Entry
	debug    bool
	trace    bool
	found    int
}

// Solve returns a range function producing the query's solutions in resolution order.
func (w *World) Solve(q *Query) func(func(*Solution) bool) {
	return func(yield func(*Solution) bool) {
		s := &search{
			world:    w,
			query:    q,
			bindings: NewBindings(),
			yield:    yield,
			log:      w.log.WithField("query", uuid.New()),
			debug:    w.log.IsLevelEnabled(logrus.DebugLevel),
			trace:    w.log.IsLevelEnabled(logrus.TraceLevel),
		}
		s.bindings.Push(q.NumVars)
		for i := len(q.Goals) - 1; i >= 0; i-- {
			s.goals = append(s.goals, goalRef{inst: s.bindings.Instance(q.Goals[i]), id: -1})
		}
		pruned := s.step(0)
		s.bindings.Pop()
		s.log.WithFields(logrus.Fields{"solutions": s.found, "pruned": pruned}).Debug("query finished")
	}
}

// All returns every solution of the query.
func (w *World) All(q *Query) []*Solution {
	var r []*Solution
	for sol := range w.Solve(q) {
		r = append(r, sol)
	}
	return r
}

// SolveAll solves independent queries concurrently. If limit is positive,
// at most limit solutions are collected per query.
func (w *World) SolveAll(ctx context.Context, queries []*Query, limit int) ([][]*Solution, error) {
	r := make([][]*Solution, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		g.Go(func() error {
			for sol := range w.Solve(q) {
				r[i] = append(r[i], sol)
				if limit > 0 && len(r[i]) >= limit {
					break
				}
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// step resolves the goal on top of the stack. It returns true when the
// search must not backtrack any further, either because a cut fired or
// because the consumer stopped.
func (s *search) step(depth int) bool {
	n := len(s.goals)
	if n == 0 {
		return !s.report()
	}
	goal := s.goals[n-1]
	s.goals = s.goals[:n-1]

	if a, ok := s.bindings.Resolve(goal.inst).Term.(*Atom); ok && a == s.world.cut {
		s.step(depth + 1)
		s.goals = append(s.goals, goal)
		return true
	}

	if s.trace {
		s.log.WithFields(logrus.Fields{"goal": goal.id, "depth": depth}).Tracef("selected %s", s.bindings.Data(goal.inst))
	}
	for _, i := range s.world.index.get(goal.id) {
		rule := s.world.rules[i]
		s.bindings.Push(rule.NumVars)
		if s.bindings.Unify(goal.inst, s.bindings.Instance(rule.Head)) {
			if s.trace {
				s.log.WithFields(logrus.Fields{"goal": goal.id, "rule": i, "depth": depth}).Trace("head unified")
			}
			for j := len(rule.Body) - 1; j >= 0; j-- {
				s.goals = append(s.goals, goalRef{inst: s.bindings.Instance(rule.Body[j]), id: rule.goalID + j})
			}
			if s.step(depth + 1) {
				s.bindings.Pop()
				s.goals = append(s.goals[:n-1], goal)
				return true
			}
			s.goals = s.goals[:n-1]
		}
		s.bindings.Pop()
	}
	s.goals = append(s.goals, goal)
	return false
}

func (s *search) report() bool {
	s.found++
	goals := slice.Fmap(func(t Term) Term {
		return s.bindings.Data(Instance{Term: t})
	}, s.query.Goals)
	bindings := make(map[string]Term, len(s.query.names))
	for _, name := range s.query.names {
		bindings[name] = s.bindings.Data(Instance{Term: s.query.vars[name]})
	}
	sol := &Solution{Goals: goals, Bindings: bindings, names: s.query.names}
	if s.debug {
		s.log.WithField("solution", s.found).Debug(sol.String())
	}
	return s.yield(sol)
}

package resolver

// ruleIndex maps every body-subgoal occurrence, by its id, to the rules
// whose heads can unify with it. Goals without an id use all rules.
type ruleIndex struct {
	candidates [][]int
	all        []int
}

func newRuleIndex(n int) *ruleIndex {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return &ruleIndex{all: all}
}

// buildRuleIndex probes each subgoal against each head in fresh unbound
// frames. A probe fails only on atom, arity or atom/compound mismatch,
// which no later binding can repair.
func buildRuleIndex(rules []*Rule) *ruleIndex {
	idx := newRuleIndex(len(rules))
	b := NewBindings()
	for _, r := range rules {
		for _, g := range r.Body {
			var cands []int
			for i, h := range rules {
				b.Push(r.NumVars)
				goal := b.Instance(g)
				b.Push(h.NumVars)
				if b.Unify(goal, b.Instance(h.Head)) {
					cands = append(cands, i)
				}
				b.Pop()
				b.Pop()
			}
			idx.candidates = append(idx.candidates, cands)
		}
	}
	return idx
}

func (idx *ruleIndex) get(id int) []int {
	if id >= 0 && id < len(idx.candidates) {
		return idx.candidates[id]
	}
	return idx.all
}

// Candidates returns the indices of the rules tried for the goal-th body
// subgoal of the rule-th rule.
func (w *World) Candidates(rule, goal int) []int {
	r := w.rules[rule]
	if goal < 0 || goal >= len(r.Body) {
		panic("subgoal index out of range")
	}
	return w.index.get(r.goalID + goal)
}

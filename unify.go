package resolver

// Unify unifies two instances under the current bindings. It is not
// transactional: on failure the bindings made so far stay in place and
// the caller must Pop the frame it pushed beforehand. There is no occurs-check.
func (b *Bindings) Unify(left, right Instance) bool {
	left = b.Resolve(left)
	right = b.Resolve(right)

	if left.Base == right.Base && left.Term == right.Term {
		return true
	}

	if v, ok := left.Term.(Variable); ok {
		if w, ok := right.Term.(Variable); ok && left.Base+int(v) == right.Base+int(w) {
			return true
		}
		b.bind(left.Base+int(v), right)
		return true
	}
	if v, ok := right.Term.(Variable); ok {
		b.bind(right.Base+int(v), left)
		return true
	}

	switch l := left.Term.(type) {
	case *Atom:
		r, ok := right.Term.(*Atom)
		return ok && l == r
	case *Compound:
		r, ok := right.Term.(*Compound)
		if !ok || len(l.Args) != len(r.Args) {
			return false
		}
		for i, arg := range l.Args {
			if !b.Unify(Instance{Term: arg, Base: left.Base}, Instance{Term: r.Args[i], Base: right.Base}) {
				return false
			}
		}
		return true
	}
	return false
}

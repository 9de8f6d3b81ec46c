package resolver

import "fmt"

func termFromList(l []ASTExpr, tail ASTExpr) ASTExpr {
	if len(l) == 0 {
		return tail
	}
	return &ASTCompound{Args: []ASTExpr{&ASTAtom{Name: ConsFunctor}, l[0], termFromList(l[1:], tail)}}
}

// ListFromTerm returns the elements of a proper list built from cons cells and nil.
func ListFromTerm(t Term) ([]Term, error) {
	var list []Term
	for {
		switch x := t.(type) {
		case *Compound:
			if !isCons(x) {
				return nil, fmt.Errorf("invalid list value (bad functor or arity): %s", x)
			}
			list = append(list, x.Args[1])
			t = x.Args[2]
		case *Atom:
			if x.Name != NilAtom {
				return nil, fmt.Errorf("invalid list value (bad terminator): %s", x)
			}
			return list, nil
		default:
			return nil, fmt.Errorf("invalid list value (bad type): %s", t)
		}
	}
}

package resolver

import (
	"github.com/mailstepcz/sexpr"
)

// ParseSymbolicExpression parses rules written as a list of symbolic expressions.
// Each rule is a list whose first element is the head and the rest is the body:
//
//	(
//		((parent ann bob))
//		((grandparent X Z) (parent X Y) (parent Y Z))
//	)
//
// Capitalised identifiers are variables and _ is the wildcard.
// Lists starting with an identifier, such as (# comment), are ignored.
func ParseSymbolicExpression(code string) ([]*ASTRule, error) {
	expr, err := sexpr.Parse(code)
	if err != nil {
		return nil, err
	}
	rules := make([]*ASTRule, 0, len(expr))
	for _, rule := range expr {
		rule, ok := rule.([]interface{})
		if !ok || len(rule) == 0 {
			return nil, ErrIllFormed
		}
		if _, ok := rule[0].(sexpr.Identifier); ok {
			continue
		}
		head, ok := rule[0].([]interface{})
		if !ok {
			return nil, ErrIllFormed
		}
		h, err := exprToAST(head)
		if err != nil {
			return nil, err
		}
		tail := make([]ASTExpr, 0, len(rule)-1)
		for _, ex := range rule[1:] {
			t, err := exprToAST(ex)
			if err != nil {
				return nil, err
			}
			tail = append(tail, t)
		}
		rules = append(rules, &ASTRule{Head: h, Tail: tail})
	}
	return rules, nil
}

// ParseSymbolicQuery parses a query written as a list of goals, such as ((parent ann X)).
func ParseSymbolicQuery(code string) (*ASTQuery, error) {
	expr, err := sexpr.Parse(code)
	if err != nil {
		return nil, err
	}
	goals := make([]ASTExpr, 0, len(expr))
	for _, ex := range expr {
		g, err := exprToAST(ex)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return &ASTQuery{Goals: goals}, nil
}

func exprToAST(expr interface{}) (ASTExpr, error) {
	switch x := expr.(type) {
	case sexpr.Identifier:
		if x == "!" {
			return &ASTAtom{Name: CutAtom}, nil
		}
		return identExpr(string(x)), nil
	case sexpr.QuotedString:
		return &ASTAtom{Name: string(x)}, nil
	case []interface{}:
		if len(x) == 0 {
			return nil, ErrIllFormed
		}
		args := make([]ASTExpr, len(x))
		for i, arg := range x {
			a, err := exprToAST(arg)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &ASTCompound{Args: args}, nil
	default:
		return nil, ErrIllFormed
	}
}

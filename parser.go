package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phomola/lrparser"
	"github.com/phomola/textkit"
)

var (
	grammar = lrparser.NewGrammar(lrparser.MustBuildRules([]*lrparser.SynSem{
		{Syn: `Init -> Stmts`, Sem: func(args []any) any { return args[0] }},
		{Syn: `Stmts -> Stmts Stmt`, Sem: func(args []any) any { return append(args[0].([]AST), args[1].(AST)) }},
		{Syn: `Stmts -> Stmt`, Sem: func(args []any) any { return []AST{args[0].(AST)} }},
		{Syn: `Stmt -> Term "."`, Sem: func(args []any) any { return &ASTRule{Head: args[0].(ASTExpr)} }},
		{Syn: `Stmt -> Term ":-" Terms "."`, Sem: func(args []any) any {
			return &ASTRule{Head: args[0].(ASTExpr), Tail: args[2].([]ASTExpr)}
		}},
		{Syn: `Stmt -> "?-" Terms "."`, Sem: func(args []any) any { return &ASTQuery{Goals: args[1].([]ASTExpr)} }},
		{Syn: `Terms -> Terms "," Term`, Sem: func(args []any) any { return append(args[0].([]ASTExpr), args[2].(ASTExpr)) }},
		{Syn: `Terms -> Term`, Sem: func(args []any) any { return []ASTExpr{args[0].(ASTExpr)} }},
		{Syn: `Term -> ident`, Sem: func(args []any) any { return identExpr(args[0].(string)) }},
		{Syn: `Term -> ident "(" Terms ")"`, Sem: func(args []any) any {
			return &ASTCompound{Args: append([]ASTExpr{&ASTAtom{Name: args[0].(string)}}, args[2].([]ASTExpr)...)}
		}},
		{Syn: `Term -> integer`, Sem: func(args []any) any { return &ASTAtom{Name: strconv.Itoa(args[0].(int))} }},
		{Syn: `Term -> string`, Sem: func(args []any) any { return &ASTAtom{Name: args[0].(string)} }},
		{Syn: `Term -> "!"`, Sem: func(args []any) any { return &ASTAtom{Name: CutAtom} }},
		{Syn: `Term -> "[" "]"`, Sem: func(args []any) any { return &ASTAtom{Name: NilAtom} }},
		{Syn: `Term -> "[" Terms "]"`, Sem: func(args []any) any {
			return termFromList(args[1].([]ASTExpr), &ASTAtom{Name: NilAtom})
		}},
		{Syn: `Term -> "[" Terms "|" Term "]"`, Sem: func(args []any) any {
			return termFromList(args[1].([]ASTExpr), args[3].(ASTExpr))
		}},
	}))
)

// Program is a parsed source text.
type Program struct {
	Rules   []*ASTRule
	Queries []*ASTQuery
}

func atomIsVar(s string) bool {
	if len(s) > 0 {
		return s[:1] == strings.ToUpper(s[:1])
	}
	return false
}

func identExpr(name string) ASTExpr {
	switch {
	case name == "_":
		return new(ASTWildcard)
	case atomIsVar(name):
		return &ASTVar{Name: name}
	default:
		return &ASTAtom{Name: name}
	}
}

func parseCode(code string) (interface{}, error) {
	tok := textkit.Tokeniser{
		CommentPrefix: "%",
		StringRune:    '"',
		IdentChars:    "_",
	}
	tokens := tok.Tokenise(code, "")
	tokens = lrparser.CoalesceSymbols(tokens, []string{":-", "?-"})
	return grammar.Parse(tokens)
}

// ParseProgram parses clauses and queries written in Prolog syntax.
func ParseProgram(code string) (*Program, error) {
	var p Program
	if strings.TrimSpace(code) == "" {
		return &p, nil
	}
	r, err := parseCode(code)
	if err != nil {
		return nil, err
	}
	stmts, ok := r.([]AST)
	if !ok {
		panic("unexpected type of parser output")
	}
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *ASTRule:
			p.Rules = append(p.Rules, stmt)
		case *ASTQuery:
			p.Queries = append(p.Queries, stmt)
		default:
			panic("unexpected type of AST")
		}
	}
	return &p, nil
}

// ParseQuery parses a single query. The leading "?-" and the final "." are optional.
func ParseQuery(code string) (*ASTQuery, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "?-") {
		code = "?- " + code
	}
	if !strings.HasSuffix(code, ".") {
		code += "."
	}
	p, err := ParseProgram(code)
	if err != nil {
		return nil, err
	}
	if len(p.Rules) != 0 || len(p.Queries) != 1 {
		return nil, fmt.Errorf("%w: expected a single query", ErrIllFormed)
	}
	return p.Queries[0], nil
}

package resolver

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fealsamh/go-utils/dbutils"
	"github.com/google/uuid"
	"github.com/mailstepcz/slice"
	"gopkg.in/yaml.v3"
)

type source struct {
	Predicates []predicate `yaml:"predicates"`
	Rules      string      `yaml:"rules"`
}

type predicate struct {
	Functor string   `yaml:"functor"`
	Args    []string `yaml:"args"`
}

// LoadYAML loads facts and rules from a YAML document of the form
//
//	predicates:
//	- functor: parent
//	  args: [ann, bob]
//	rules: |
//	  grandparent(X, Z) :- parent(X, Y), parent(Y, Z).
//
// Predicate arguments are atoms. Rules are written in Prolog syntax and may contain queries.
func LoadYAML(r io.Reader) (*Program, error) {
	var source source
	if err := yaml.NewDecoder(r).Decode(&source); err != nil {
		return nil, err
	}
	var p Program
	for _, pred := range source.Predicates {
		if pred.Functor == "" {
			return nil, fmt.Errorf("%w: predicate without functor", ErrIllFormed)
		}
		p.Rules = append(p.Rules, &ASTRule{Head: factExpr(pred.Functor, slice.Fmap(func(arg string) ASTExpr {
			return &ASTAtom{Name: arg}
		}, pred.Args))})
	}
	if source.Rules != "" {
		rp, err := ParseProgram(source.Rules)
		if err != nil {
			return nil, err
		}
		p.Rules = append(p.Rules, rp.Rules...)
		p.Queries = append(p.Queries, rp.Queries...)
	}
	return &p, nil
}

func factExpr(functor string, args []ASTExpr) ASTExpr {
	if len(args) == 0 {
		return &ASTAtom{Name: functor}
	}
	return &ASTCompound{Args: append([]ASTExpr{&ASTAtom{Name: functor}}, args...)}
}

// LoadSQL reads every row of a table as a fact (functor col1 col2 ...).
// Columns are given as "name::type" with type one of string, int and uuid.
// NULL values become the atom nil.
func LoadSQL(ctx context.Context, db dbutils.Querier, functor, table string, columns []string) ([]*ASTRule, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns for table '%s'", ErrIllFormed, table)
	}
	names, types := make([]string, len(columns)), make([]string, len(columns))
	for i, c := range columns {
		n, t, ok := strings.Cut(c, "::")
		if !ok {
			return nil, fmt.Errorf("invalid column definition (bad structure): %s", c)
		}
		names[i], types[i] = n, t
	}

	r := make([]interface{}, len(columns))
	for i, typ := range types {
		switch typ {
		case "string":
			r[i] = new(sql.Null[string])
		case "int":
			r[i] = new(sql.Null[int])
		case "uuid":
			r[i] = new(uuid.NullUUID)
		default:
			return nil, fmt.Errorf("unknown column type: %s", typ)
		}
	}

	rows, err := db.QueryContext(ctx, `SELECT `+
		strings.Join(slice.Fmap(func(name string) string {
			return strconv.Quote(name)
		}, names), ", ")+
		` FROM `+strconv.Quote(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []*ASTRule
	for rows.Next() {
		if err := rows.Scan(r...); err != nil {
			return nil, err
		}
		args := slice.Fmap(func(x any) ASTExpr {
			switch x := x.(type) {
			case *sql.Null[string]:
				if x.Valid {
					return &ASTAtom{Name: x.V}
				}
			case *sql.Null[int]:
				if x.Valid {
					return &ASTAtom{Name: strconv.Itoa(x.V)}
				}
			case *uuid.NullUUID:
				if x.Valid {
					return &ASTAtom{Name: x.UUID.String()}
				}
			}
			return &ASTAtom{Name: NilAtom}
		}, r)
		facts = append(facts, &ASTRule{Head: factExpr(functor, args)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return facts, nil
}

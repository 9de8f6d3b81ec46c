package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mailstepcz/resolver"
)

type runParams struct {
	programParams
	query string
	limit int
}

func init() {
	var params runParams
	runCommand := &cobra.Command{
		Use:   "run",
		Short: "Run queries against a program",
		Long: `Run a query against a program and print every solution.

Without --query, every "?-" query contained in the program is run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueries(cmd.Context(), cmd.OutOrStdout(), &params)
		},
	}
	params.bind(runCommand)
	runCommand.Flags().StringVarP(&params.query, "query", "q", "", "query to run")
	runCommand.Flags().IntVarP(&params.limit, "limit", "n", 0, "maximum number of solutions per query (0 for all)")
	RootCommand.AddCommand(runCommand)
}

func runQueries(ctx context.Context, out io.Writer, params *runParams) error {
	prog, err := params.load()
	if err != nil {
		return err
	}
	w, err := params.world(prog)
	if err != nil {
		return err
	}

	asts := prog.Queries
	if params.query != "" {
		var q *resolver.ASTQuery
		if params.symbolic() {
			q, err = resolver.ParseSymbolicQuery(params.query)
		} else {
			q, err = resolver.ParseQuery(params.query)
		}
		if err != nil {
			return err
		}
		asts = []*resolver.ASTQuery{q}
	}
	if len(asts) == 0 {
		return errors.New("no query given")
	}

	queries := make([]*resolver.Query, len(asts))
	for i, a := range asts {
		q, err := w.NewQuery(a.Goals...)
		if err != nil {
			return err
		}
		queries[i] = q
	}
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := w.SolveAll(ctx, queries, params.limit)
	if err != nil {
		return err
	}
	for i, q := range queries {
		if len(queries) > 1 {
			fmt.Fprintln(out, q)
		}
		if len(results[i]) == 0 {
			fmt.Fprintln(out, "no")
			continue
		}
		for _, sol := range results[i] {
			fmt.Fprintln(out, sol)
		}
	}
	return nil
}

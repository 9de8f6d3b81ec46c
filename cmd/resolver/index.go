package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	var params programParams
	indexCommand := &cobra.Command{
		Use:   "index",
		Short: "Print the rule index of a program",
		Long:  "Print every body subgoal of every rule together with the rules that may resolve it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printIndex(cmd.OutOrStdout(), &params)
		},
	}
	params.bind(indexCommand)
	RootCommand.AddCommand(indexCommand)
}

func printIndex(out io.Writer, params *programParams) error {
	prog, err := params.load()
	if err != nil {
		return err
	}
	w, err := params.world(prog)
	if err != nil {
		return err
	}
	for i, r := range w.Rules() {
		fmt.Fprintf(out, "%d: %s\n", i, r)
		for j, g := range r.Body {
			fmt.Fprintf(out, "    %s -> %v\n", g, w.Candidates(i, j))
		}
	}
	return nil
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mailstepcz/resolver"
)

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:          "resolver",
	Short:        "Prolog-style resolution engine",
	Long:         "Solve queries against a database of facts and rules using SLD-resolution.",
	SilenceUsage: true,
}

type programParams struct {
	path      string
	verbosity int
	noIndex   bool
}

func (p *programParams) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.path, "program", "p", "", "program file (.pl, .sexp or .yaml)")
	cmd.Flags().CountVarP(&p.verbosity, "verbose", "v", "log resolution (repeat for traces)")
	cmd.Flags().BoolVar(&p.noIndex, "no-index", false, "try every rule for every goal")
	_ = cmd.MarkFlagRequired("program")
}

func (p *programParams) symbolic() bool {
	switch filepath.Ext(p.path) {
	case ".sexp", ".sexpr":
		return true
	}
	return false
}

func (p *programParams) load() (*resolver.Program, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	switch {
	case p.symbolic():
		rules, err := resolver.ParseSymbolicExpression(string(data))
		if err != nil {
			return nil, err
		}
		return &resolver.Program{Rules: rules}, nil
	case filepath.Ext(p.path) == ".yaml" || filepath.Ext(p.path) == ".yml":
		return resolver.LoadYAML(bytes.NewReader(data))
	default:
		return resolver.ParseProgram(string(data))
	}
}

func (p *programParams) world(prog *resolver.Program) (*resolver.World, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	switch {
	case p.verbosity > 1:
		log.SetLevel(logrus.TraceLevel)
	case p.verbosity == 1:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	opts := []resolver.Option{resolver.WithLogger(log)}
	if p.noIndex {
		opts = append(opts, resolver.WithoutIndex())
	}
	w, err := resolver.NewWorld(prog.Rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.path, err)
	}
	return w, nil
}

func main() {
	if err := RootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

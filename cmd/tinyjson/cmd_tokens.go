package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tinyjson/json/grammar"
)

func newTokensCmd() *cobra.Command {
	var skipWhitespace bool

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream matched by the JSON grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			g, err := grammar.Load()
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}

			tokens, err := grammar.NewLexer(g, text).Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				if skipWhitespace && tok.Kind == "ws" {
					continue
				}
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipWhitespace, "skip-ws", true, "omit whitespace tokens")

	return cmd
}

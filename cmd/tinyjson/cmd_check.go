package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tinyjson/json/format"
	"github.com/dhamidi/tinyjson/json/parser"
)

func newCheckCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:           "check <file|->...",
		Short:         "Report whether each input is a single valid JSON text",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if outputFormat != "text" && outputFormat != "json" {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			enc := format.NewErrorJSONEncoder(out)

			failed := 0
			for _, arg := range args {
				name, text, err := readInput(cmd, arg)
				if err == nil {
					_, err = parser.Parse(text)
				}
				if err != nil {
					failed++
				}

				if outputFormat == "json" {
					if encErr := enc.Encode(name, err); encErr != nil {
						return fmt.Errorf("encode: %w", encErr)
					}
					continue
				}

				var syntaxErr *parser.SyntaxError
				switch {
				case err == nil:
					fmt.Fprintf(out, "%s: ok\n", name)
				case errors.As(err, &syntaxErr):
					fmt.Fprintf(out, "%s:%v\n", name, syntaxErr)
				default:
					fmt.Fprintf(out, "%s: %v\n", name, err)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

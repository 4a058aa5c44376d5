package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tinyjson/json/format"
	"github.com/dhamidi/tinyjson/json/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse an input and dump the value tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			v, err := parser.Parse(text)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "lines":
				if err := format.NewLineEncoder(out).Encode(v); err != nil {
					return fmt.Errorf("encode lines: %w", err)
				}
			case "go":
				fmt.Fprintf(out, "%#v\n", v)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "lines", "output format (lines, go)")

	return cmd
}

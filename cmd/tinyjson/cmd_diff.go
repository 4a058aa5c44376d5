package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tinyjson/json/reference"
)

func newDiffCmd() *cobra.Command {
	var decoderNames []string

	cmd := &cobra.Command{
		Use:   "diff <file|->",
		Short: "Compare the parser with reference JSON decoders",
		Long: `Parse an input with tinyjson and with each reference decoder, then report
whether they agree on acceptance and, when both accept, on the decoded value.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var decoders []reference.Decoder
			for _, name := range decoderNames {
				d, err := reference.Lookup(name)
				if err != nil {
					return err
				}
				decoders = append(decoders, d)
			}

			name, text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			report := reference.Compare(text, decoders...)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", name, report)

			if !report.Agree() {
				return fmt.Errorf("%s: %d decoder(s) disagree", name, len(report.Disagreements()))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&decoderNames, "decoder", "d", reference.Names(), "reference decoders to compare against")

	return cmd
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

// readInput reads the named file, or standard input for "-".
func readInput(cmd *cobra.Command, name string) (string, string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return stdinName, "", fmt.Errorf("read stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return name, "", fmt.Errorf("read file: %w", err)
	}
	log.Debugf("read %s (%d bytes)", name, len(data))
	return name, string(data), nil
}

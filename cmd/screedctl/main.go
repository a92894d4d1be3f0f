// Package main is screedctl, a command-line front end to the designation
// codec and the conformity assessor.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errCheckFailed makes the process exit non-zero after a report was printed.
var errCheckFailed = errors.New("check failed")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:           "screedctl",
		Short:         "EN 13813 designation and conformity tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&strict, "strict", false, "Report out-of-table classes as errors")

	cmd.AddCommand(designationCmd(&strict))
	cmd.AddCommand(assessCmd())
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

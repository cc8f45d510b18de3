package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/clawgames.net/internal/core/sanitize"
	"gitlab.com/clawgames.net/internal/domain"
)

type scanReport struct {
	Accepted   bool               `json:"accepted"`
	Violations []domain.Violation `json:"violations"`
}

func newScanCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Scan a game HTML file and optionally write the sanitized result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			return runScan(cmd.OutOrStdout(), string(code), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the sanitized HTML here when accepted")
	return cmd
}

// runScan prints the verdict as JSON. A rejected file is reported as an error
// so the command exits non-zero.
func runScan(w io.Writer, code, out string) error {
	verdict := sanitize.Scan(code)
	report := scanReport{Accepted: verdict.Accepted, Violations: verdict.Violations}
	if report.Violations == nil {
		report.Violations = []domain.Violation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if !verdict.Accepted {
		return fmt.Errorf("rejected with %d violation(s)", len(verdict.Violations))
	}
	if out != "" {
		if err := os.WriteFile(out, []byte(*verdict.SanitizedCode), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
	}
	return nil
}

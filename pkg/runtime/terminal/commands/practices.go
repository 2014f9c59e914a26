package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/practice-atlas/pkg/services/practice"
)

type PracticesCmd struct {
	explorer practice.Explorer
}

func NewPracticesCmd(explorer practice.Explorer) *cobra.Command {
	pc := &PracticesCmd{explorer: explorer}
	return &cobra.Command{
		Use:   "practices",
		Short: "List configured practices",
		RunE:  pc.run,
	}
}

func (pc *PracticesCmd) run(cmd *cobra.Command, _ []string) error {
	practices, err := pc.explorer.ListPractices(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list practices: %w", err)
	}

	if len(practices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No practices configured")
		return nil
	}

	names := make([]string, 0, len(practices))
	for _, p := range practices {
		names = append(names, p.Name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configured practices:\n%s\n", strings.Join(names, "\n"))
	return nil
}

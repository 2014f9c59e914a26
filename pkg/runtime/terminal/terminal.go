package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/practice-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/practice-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/practice-atlas/pkg/services/practice"
)

// CLI represents the command-line interface
type CLI struct {
	explorer practice.Explorer
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Explorer practice.Explorer
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		explorer: opts.Explorer,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice-atlas",
		Short: "Practice reporting tool",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.explorer, cli.reporter))
	cmd.AddCommand(commands.NewPracticesCmd(cli.explorer))

	return cmd
}

package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/de-tools/practice-atlas/pkg/runtime/terminal"
	"github.com/de-tools/practice-atlas/pkg/services/config"
	"github.com/de-tools/practice-atlas/pkg/services/practice"
)

func main() {
	usr, _ := user.Current()
	cfgPath := fmt.Sprintf("%s/.practiceatlas", usr.HomeDir)
	if env := os.Getenv("PRACTICE_ATLAS_CONFIG"); env != "" {
		cfgPath = env
	}

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Explorer: practice.NewExplorer(registry),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

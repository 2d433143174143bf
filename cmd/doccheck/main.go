package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/doccheck/internal/cmd"
	"github.com/harrison/doccheck/internal/executor"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Lint failures were already reported block by block
		if !errors.Is(err, executor.ErrScriptsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/swapverse/swapverse/cmd/swapversed/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

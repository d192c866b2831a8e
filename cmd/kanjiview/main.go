// Package main is the entry point for the kanjiview CLI.
package main

import (
	"os"

	"github.com/f3rmion/kanjiview/cmd/kanjiview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

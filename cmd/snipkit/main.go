// Package main provides the entry point for the snipkit CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/snipkit/cmd/snipkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

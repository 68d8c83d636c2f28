// main.go
package main

import (
	"os"

	"github.com/propwatch/violationwatch/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

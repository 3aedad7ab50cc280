package main

import (
	"os"

	"github.com/roikit/roi-calculator/cmd/roikit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

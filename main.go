package main

import (
	"os"

	"github.com/yourusername/bucket-browser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/snapvote/snapvote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/dohyun/jumble/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

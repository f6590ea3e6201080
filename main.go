package main

import (
	"os"

	"github.com/go-authgate/tokenguard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

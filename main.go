package main

import (
	"os"

	"github.com/renekerr/sqlinv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

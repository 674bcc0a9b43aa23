package main

import (
	"fmt"
	"os"
)

func main() {
	root, err := newRootCommand()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shelfctl: %v\n", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

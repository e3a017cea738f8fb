// Package main provides the entry point for the rigcheck hardware assessor.
package main

import (
	"errors"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if errors.Is(err, ErrBelowThreshold) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

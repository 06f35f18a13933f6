// Command cancelprep prepares the hotel booking dataset for a cancellation
// classifier.
//
// Usage:
//
//	cancelprep prepare --config cancelprep.yaml --out-dir out
//	cancelprep profile --input hotels.csv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// Command discourse extracts discourse-cue feature matrices from text files.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

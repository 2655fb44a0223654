// Command csim replays a valgrind memory trace against a set-associative
// cache and prints the number of hits, misses, and evictions.
package main

import (
	"github.com/sarchlab/csim/cmd/csim/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	if err := cmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

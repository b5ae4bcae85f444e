// Command cachesim runs address streams through a set-associative cache model
// and prints the resulting hit, miss, and eviction counters.
package main

import "github.com/sarchlab/cachesim/cachesim/cmd"

func main() {
	cmd.Execute()
}

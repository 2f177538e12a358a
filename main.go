package main

import (
	"fmt"

	"github.com/seeprybyrun/burlap/benchmarks"
)

// main entry point to the value iteration demo and the solve server
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}

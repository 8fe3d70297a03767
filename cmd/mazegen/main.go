// Command mazegen generates, benchmarks and inspects mazes without the API server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

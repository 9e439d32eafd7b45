// main is the entry point for the wordboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/wordboard/cmd"
	"github.com/huangsam/wordboard/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to stop profiling: %v\n", stopErr)
	}
	iocache.CloseCaching()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

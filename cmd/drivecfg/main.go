// cmd/drivecfg/main.go
package main

import (
	"fmt"
	"os"

	"github.com/tamzrod/drivecfg/internal/result"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "drivecfg: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// errorCode is the status block code of err: 0 for nil, the result code when
// err carries one, Unknown otherwise.
func errorCode(err error) uint16 {
	return uint16(result.CodeOf(err))
}

// exitCode maps an error onto the process exit status.
func exitCode(err error) int {
	if c := errorCode(err); c != 0 {
		return int(c)
	}
	return 1
}

// FILE: actionlog/src/cmd/actionlog/output.go
package main

import (
	"fmt"
	"io"
)

// cliOutput carries the process streams through a run. The console output
// handler writes action records to the same streams; quiet silences only the
// CLI's own messages.
type cliOutput struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool
}

func (o *cliOutput) printf(format string, args ...any) {
	if !o.quiet {
		fmt.Fprintf(o.stdout, format, args...)
	}
}

func (o *cliOutput) errorf(format string, args ...any) {
	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

// Package main implements sqtt_err - lists the library error codes and
// their descriptions.
package main

import (
	"fmt"
	"io"
	"os"

	"sqtt/internal/common"
	"sqtt/internal/sqtt"
)

func main() {
	printErrors(os.Stdout)
}

func printErrors(w io.Writer) {
	fmt.Fprintln(w, "SQTT Error Code List")
	fmt.Fprintln(w)

	for code := sqtt.OK; code < sqtt.ErrLast; code++ {
		fatal := ""
		if code.IsFatal() {
			fatal = " (fatal)"
		}
		fmt.Fprintf(w, "%d: %s - %s%s\n", code, common.ErrorName(code), common.ErrorDescription(code), fatal)
	}
}

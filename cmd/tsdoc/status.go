package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhamidi/tsdoc/workspace"
)

var (
	changedColor = color.New(color.FgYellow)
	writtenColor = color.New(color.FgGreen, color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// printBatch writes one status line per changed or failed file.
func printBatch(w io.Writer, batch *workspace.Batch) {
	for _, r := range batch.Results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "%s %s: %s\n", failedColor.Sprint("error"), r.Path, r.Err)
		case r.Written != "":
			fmt.Fprintf(w, "%s %s %s\n", writtenColor.Sprint("wrote"), r.Written, dimColor.Sprintf("(%d insertions)", r.Insertions))
		case r.Changed:
			fmt.Fprintf(w, "%s %s %s\n", changedColor.Sprint("needs tags"), r.Path, dimColor.Sprintf("(%d insertions)", r.Insertions))
		}
	}
}

func printStats(w io.Writer, batch *workspace.Batch) {
	fmt.Fprintf(w, "%d files, %d changed, %d failed in %s\n",
		len(batch.Results), len(batch.Changed()), len(batch.Failed()), batch.Elapsed)
}

package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/xplnobj/codec/internal/worker"
)

// status renders the outcome of a conversion, colored when w is a terminal.
func status(w io.Writer, res worker.Result) string {
	out := termenv.NewOutput(w)
	switch {
	case res.Err != nil:
		return out.String("failed").Foreground(out.Color("1")).String()
	case res.Conversion.Warnings > 0 || res.Conversion.Errors > 0:
		return out.String("warn").Foreground(out.Color("3")).String()
	default:
		return out.String("ok").Foreground(out.Color("2")).String()
	}
}

// printResult writes one line per conversion.
func printResult(w io.Writer, res worker.Result) {
	target := res.Job.Target
	if target == "" {
		target = "-"
	}
	fmt.Fprintf(w, "%-6s %s -> %s (%d lines, %d warnings, %d errors)\n",
		status(w, res), res.Job.Source, target,
		res.Conversion.Lines, res.Conversion.Warnings, res.Conversion.Errors)
	if res.Err != nil {
		fmt.Fprintf(w, "       %v\n", res.Err)
	}
}

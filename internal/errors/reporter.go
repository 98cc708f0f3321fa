package errors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report renders err to w in the toolchain's banner style: a colored
// "kind[code]: message" line keyed by severity, followed by the instruction
// offset when one is known. KindIrreducible renders as a warning rather than
// an error, since the pipeline still produced output.
func Report(w io.Writer, err *Error) {
	levelColor := color.New(color.FgRed, color.Bold)
	if err.Kind == KindIrreducible {
		levelColor = color.New(color.FgYellow, color.Bold)
	}
	levelColor.Fprintf(w, "%s[%s]", err.Kind, err.Code)
	fmt.Fprintf(w, ": %s\n", err.Msg)

	dim := color.New(color.Faint)
	if err.Offset >= 0 {
		dim.Fprintf(w, "  --> instruction %d\n", err.Offset)
	}
	if err.Cause != nil {
		dim.Fprintf(w, "  caused by: %s\n", err.Cause)
	}
}

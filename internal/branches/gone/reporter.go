package gone

import (
	"fmt"
	"io"
	"os"
)

// reporter writes user-facing progress lines to the command output.
type reporter struct {
	writer io.Writer
}

func newReporter(writer io.Writer) reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return reporter{writer: writer}
}

func (progress reporter) printf(format string, arguments ...any) {
	fmt.Fprintf(progress.writer, format, arguments...)
}

// printBlock writes text and terminates it with a newline when git did not.
func (progress reporter) printBlock(text string) {
	if len(text) == 0 {
		return
	}
	fmt.Fprint(progress.writer, text)
	if text[len(text)-1] != '\n' {
		fmt.Fprintln(progress.writer)
	}
}

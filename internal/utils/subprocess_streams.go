package utils

import (
	"io"
	"os"
	"sync"
)

// SubprocessStreams holds the terminal writers git output is mirrored to while a command runs.
type SubprocessStreams struct {
	Output      io.Writer
	ErrorOutput io.Writer
}

// NewSubprocessStreams falls back to the process stdout and stderr for nil writers and flushes after every write.
func NewSubprocessStreams(output io.Writer, errorOutput io.Writer) SubprocessStreams {
	if output == nil {
		output = os.Stdout
	}
	if errorOutput == nil {
		errorOutput = os.Stderr
	}
	return SubprocessStreams{
		Output:      newFlushingWriter(output),
		ErrorOutput: newFlushingWriter(errorOutput),
	}
}

// flushingWriter serializes writes and flushes destinations that buffer, such as bufio.Writer.
type flushingWriter struct {
	mutex       sync.Mutex
	destination io.Writer
}

func newFlushingWriter(destination io.Writer) io.Writer {
	if wrapped, isWrapped := destination.(*flushingWriter); isWrapped {
		return wrapped
	}
	return &flushingWriter{destination: destination}
}

func (writer *flushingWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	bytesWritten, writeError := writer.destination.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if flushable, buffersOutput := writer.destination.(interface{ Flush() error }); buffersOutput {
		return bytesWritten, flushable.Flush()
	}
	return bytesWritten, nil
}

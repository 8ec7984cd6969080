package utils_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-clean-gone/internal/utils"
)

const (
	streamsFetchProgressConstant  = "From ../remote.git\n - [deleted]         (none)     -> origin/feature/gone\n"
	streamsDeletionOutputConstant = "Deleted branch feature/gone (was 1a2b3c4).\n"
)

func TestSubprocessStreamsFlushBufferedDestinations(testInstance *testing.T) {
	outputDestination := &bytes.Buffer{}
	errorDestination := &bytes.Buffer{}
	bufferedOutput := bufio.NewWriterSize(outputDestination, 4096)
	bufferedErrorOutput := bufio.NewWriterSize(errorDestination, 4096)

	streams := utils.NewSubprocessStreams(bufferedOutput, bufferedErrorOutput)

	bytesWritten, writeError := streams.Output.Write([]byte(streamsDeletionOutputConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(streamsDeletionOutputConstant), bytesWritten)
	require.Equal(testInstance, streamsDeletionOutputConstant, outputDestination.String())

	_, writeError = streams.ErrorOutput.Write([]byte(streamsFetchProgressConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, streamsFetchProgressConstant, errorDestination.String())
}

func TestSubprocessStreamsDefaultToProcessStreams(testInstance *testing.T) {
	streams := utils.NewSubprocessStreams(nil, nil)
	require.NotNil(testInstance, streams.Output)
	require.NotNil(testInstance, streams.ErrorOutput)
}

func TestSubprocessStreamsReuseWrappedWriters(testInstance *testing.T) {
	first := utils.NewSubprocessStreams(&bytes.Buffer{}, &bytes.Buffer{})
	second := utils.NewSubprocessStreams(first.Output, first.ErrorOutput)
	require.Same(testInstance, first.Output, second.Output)
	require.Same(testInstance, first.ErrorOutput, second.ErrorOutput)
}

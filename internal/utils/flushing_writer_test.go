package utils_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/herald/internal/utils"
)

const testFlushingWriterPayloadConstant = "flushed line\n"

func TestFlushingWriterFlushesBufferedWriter(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriterSize(destination, 4096)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))

	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(testFlushingWriterPayloadConstant), bytesWritten)
	require.Equal(testInstance, testFlushingWriterPayloadConstant, destination.String())
}

func TestNewFlushingWriterDoesNotDoubleWrap(testInstance *testing.T) {
	flushingWriter := utils.NewFlushingWriter(&bytes.Buffer{})
	require.Same(testInstance, flushingWriter, utils.NewFlushingWriter(flushingWriter))
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}

func TestFlushingWriterSync(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriterSize(destination, 4096)
	_, writeError := bufferedWriter.WriteString(testFlushingWriterPayloadConstant)
	require.NoError(testInstance, writeError)

	flushingWriter, isFlushingWriter := utils.NewFlushingWriter(bufferedWriter).(*utils.FlushingWriter)
	require.True(testInstance, isFlushingWriter)
	require.NoError(testInstance, flushingWriter.Sync())
	require.Equal(testInstance, testFlushingWriterPayloadConstant, destination.String())
}

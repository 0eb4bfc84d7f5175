package utils

import (
	"io"
	"sync"
)

// FlushingWriter serializes writes and flushes buffered writers after each one.
// It also satisfies zapcore.WriteSyncer so console loggers can share it.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps the provided writer unless it is already wrapped.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	return bytesWritten, flushingWriter.flushLocked()
}

// Sync flushes the underlying writer without writing additional data.
func (flushingWriter *FlushingWriter) Sync() error {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	return flushingWriter.flushLocked()
}

func (flushingWriter *FlushingWriter) flushLocked() error {
	if flushableWriter, implementsFlush := flushingWriter.writer.(interface{ Flush() error }); implementsFlush {
		return flushableWriter.Flush()
	}
	return nil
}

package handler

import (
	"bytes"
	"sync"
)

// Most payloads here are small: award maps, item lists, error envelopes. The
// initial capacity covers those without regrowing.
const (
	bufferInitialCap = 1 << 10
	bufferMaxCap     = 64 << 10
)

// responseBuffers recycles the scratch buffers respondJSON encodes into.
var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, bufferInitialCap))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

// putBuffer returns a buffer to the pool. Buffers grown by an unusually large
// catalog response are dropped so they do not stay pinned.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > bufferMaxCap {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}

package renderer

import (
	"bytes"
	"sync"
)

// Tiered buffer sizes by top-level declaration count
const (
	smallBufferSize  = 8 * 1024  // 8KB for <10 declarations
	mediumBufferSize = 32 * 1024 // 32KB for 10-50 declarations
	largeBufferSize  = 64 * 1024 // 64KB for 50+ declarations
)

var smallBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, smallBufferSize))
	},
}

var mediumBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, mediumBufferSize))
	},
}

var largeBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, largeBufferSize))
	},
}

// getBuffer returns an empty buffer sized for a module with count
// top-level declarations.
func getBuffer(count int) *bytes.Buffer {
	var buf *bytes.Buffer
	switch {
	case count < 10:
		buf = smallBufferPool.Get().(*bytes.Buffer)
	case count < 50:
		buf = mediumBufferPool.Get().(*bytes.Buffer)
	default:
		buf = largeBufferPool.Get().(*bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// putBuffer returns buf to the pool it was taken from.
func putBuffer(buf *bytes.Buffer, count int) {
	if buf == nil {
		return
	}
	// Don't pool oversized buffers
	if buf.Cap() > 4<<20 {
		return
	}
	switch {
	case count < 10:
		smallBufferPool.Put(buf)
	case count < 50:
		mediumBufferPool.Put(buf)
	default:
		largeBufferPool.Put(buf)
	}
}

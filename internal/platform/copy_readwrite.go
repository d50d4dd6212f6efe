package platform

import (
	"io"
	"sync"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

func copyReadWrite(dst io.Writer, src io.Reader) (CopyResult, error) {
	bufp := bufPool.Get().(*[]byte) //nolint:errcheck,forcetypeassert // pool only holds *[]byte
	defer bufPool.Put(bufp)

	n, err := io.CopyBuffer(onlyWriter{dst}, onlyReader{src}, *bufp)
	return CopyResult{BytesWritten: n, Method: ReadWrite}, err
}

// CopyStream copies src into dst through a pooled buffer. It is used when the
// source must be wrapped, such as for bandwidth limiting.
func CopyStream(dst io.Writer, src io.Reader) (CopyResult, error) {
	return copyReadWrite(dst, src)
}

// onlyWriter and onlyReader hide ReaderFrom/WriterTo so io.CopyBuffer really
// uses the pooled buffer.
type onlyWriter struct{ io.Writer }

type onlyReader struct{ io.Reader }

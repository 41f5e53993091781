package core

import (
	"context"
	"io"
)

// countingReader tracks the bytes pulled from the wrapped reader.
type countingReader struct {
	reader    io.Reader
	bytesRead int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	return n, err
}

// contextReader stops reading once ctx is done, so a cancelled request does
// not keep parsing a large upload.
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.reader.Read(p)
}

// wrapInput makes r cancellable and counted. The vcard reader adds BOM
// skipping and UTF-8 repair on top.
func wrapInput(ctx context.Context, r io.Reader) *countingReader {
	return &countingReader{reader: contextReader{ctx: ctx, reader: r}}
}

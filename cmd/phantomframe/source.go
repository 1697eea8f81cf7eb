package main

import (
	"errors"
	"io"

	"github.com/makalin/phantomframe/features"
)

// rawFrameSource reads consecutive width*height luma planes from a
// reader, one grid per Next call. A truncated trailing frame ends the
// stream instead of failing it.
type rawFrameSource struct {
	r      io.Reader
	width  int
	height int
	buf    []byte
}

func newRawFrameSource(r io.Reader, width, height int) *rawFrameSource {
	return &rawFrameSource{
		r:      r,
		width:  width,
		height: height,
		buf:    make([]byte, width*height),
	}
}

func (s *rawFrameSource) Next() (*features.Grid, error) {
	if _, err := io.ReadFull(s.r, s.buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return features.GridFromLuma(s.buf, s.width, s.height)
}

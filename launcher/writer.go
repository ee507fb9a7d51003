package launcher

import (
	"io"
	"sync"
)

// syncWriter serializes writes to the operator console, which is shared by the output echo
// and the interrupt handler.
type syncWriter struct {
	m sync.Mutex
	w io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	if sw, ok := w.(*syncWriter); ok {
		return sw
	}
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	n, err := s.w.Write(p)
	if err != nil {
		return n, err
	}
	if n != len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// StdoutStorage is a Storage implementation that outputs exchanges as JSON lines
type StdoutStorage struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdoutStorage writes to w, or to os.Stdout when w is nil.
func NewStdoutStorage(w io.Writer) *StdoutStorage {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutStorage{w: w}
}

// Store outputs the exchange as one JSON line
func (s *StdoutStorage) Store(_ context.Context, e Exchange) error {
	b, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange to JSON: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = fmt.Fprintln(s.w, string(b)); err != nil {
		return fmt.Errorf("failed to write exchange to stdout: %w", err)
	}

	return nil
}

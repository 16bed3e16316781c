// Package iotest provides io helpers for tests.
package iotest

import (
	"bytes"
	"io"
	"testing"
)

// Writer builds an io.Writer that logs to the given testing.TB.
// Each line written becomes a separate log entry.
// Use it to capture program output in test logs
// instead of the terminal.
func Writer(t testing.TB) io.Writer {
	return &writer{t: t}
}

type writer struct{ t testing.TB }

func (w *writer) Write(b []byte) (int, error) {
	text := bytes.TrimSuffix(b, []byte("\n"))
	for line := range bytes.Lines(text) {
		w.t.Logf("%s", bytes.TrimSuffix(line, []byte("\n")))
	}
	if len(text) == 0 && len(b) > 0 {
		w.t.Logf("")
	}
	return len(b), nil
}

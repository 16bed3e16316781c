// Package touch updates file timestamps before a build starts,
// creating the files if they don't exist.
//
// Watchers that key off modification times
// (for example, a stylesheet rebuild) use this
// to pick up changes in files they don't track directly.
package touch

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"braces.dev/errtrace"
	"github.com/charmbracelet/log"
	"github.com/christopher-b/cbennell.com/internal/errdefer"
)

// Toucher touches files.
type Toucher struct {
	// Log receives a message for every file touched.
	// Messages are discarded if Log is nil.
	Log *log.Logger

	// Now reports the time to set on files.
	// Defaults to time.Now.
	Now func() time.Time
}

// Touch sets the access and modification times of the given files
// to the current time.
// Files that don't exist are created empty.
func (t *Toucher) Touch(paths ...string) error {
	if len(paths) == 0 {
		t.warn("No file paths provided to touch.")
		return nil
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	stamp := now()
	for _, path := range paths {
		if err := touchFile(path, stamp); err != nil {
			return errtrace.Wrap(err)
		}
		if t.Log != nil {
			t.Log.Info("Touched file", "path", path)
		}
	}
	return nil
}

func (t *Toucher) warn(msg string) {
	if t.Log != nil {
		t.Log.Warn(msg)
	}
}

func touchFile(path string, stamp time.Time) (err error) {
	err = os.Chtimes(path, stamp, stamp)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return errtrace.Wrap(err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(os.Chtimes(path, stamp, stamp))
}

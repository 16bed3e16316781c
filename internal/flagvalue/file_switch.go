package flagvalue

import (
	"flag"
	"io"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
)

// FileSwitch is an output flag like -css
// that accepts both "-css" and "-css=FILE".
//
// Without a value, output goes to a fallback writer,
// usually stdout.
// With a value, output goes to that file.
type FileSwitch string

// _fallback is recorded when the flag is passed without a value.
const _fallback FileSwitch = "-"

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the destination path,
// "-" for the fallback writer,
// or an empty string if the flag wasn't passed.
func (fs *FileSwitch) Get() any { return string(*fs) }

// String returns the same value as Get.
func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag allows the flag to be passed without a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
func (fs *FileSwitch) Set(v string) error {
	if v == "true" {
		v = string(_fallback)
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether this flag was passed at all.
func (fs *FileSwitch) Bool() bool {
	return len(*fs) > 0
}

// Create opens the destination picked by this flag.
// The returned function must be called when writing is done.
//
//   - flag not passed: output is discarded
//   - flag passed without a value: output goes to fallback
//   - flag passed with a value: the file is created
//     along with any missing parent directories
func (fs *FileSwitch) Create(fallback io.Writer) (w io.Writer, done func() error, err error) {
	switch *fs {
	case "":
		return io.Discard, nopClose, nil
	case _fallback:
		return fallback, nopClose, nil
	}

	path := string(*fs)
	if err := os.MkdirAll(filepath.Dir(path), 0o1755); err != nil {
		return nil, nil, errtrace.Wrap(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return f, f.Close, nil
}

func nopClose() error { return nil }

package errdefer_test

import (
	"os"
	"path/filepath"

	"github.com/christopher-b/cbennell.com/internal/errdefer"
)

func writeFile(name string, body []byte) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer errdefer.Close(&err, f)
	// NOTE: err must be a named return.

	_, err = f.Write(body)
	return err
}

func ExampleClose() {
	dir, err := os.MkdirTemp("", "errdefer")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	if err := writeFile(filepath.Join(dir, "page.html"), []byte("<p>hi</p>")); err != nil {
		panic(err)
	}
}

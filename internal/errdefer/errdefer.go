// Package errdefer runs deferred cleanup
// whose errors must not be lost.
//
// Both functions are meant for defer statements
// in functions with a named error return:
//
//	func writePage(path string) (err error) {
//		f, err := os.Create(path)
//		...
//		defer errdefer.Close(&err, f)
//		...
//	}
package errdefer

import (
	"errors"
	"io"

	"braces.dev/errtrace"
)

// Close closes closer and joins its error, if any, into *err.
func Close(err *error, closer io.Closer) {
	Run(err, closer.Close)
}

// Run calls fn and joins its error, if any, into *err.
func Run(err *error, fn func() error) {
	if ferr := fn(); ferr != nil {
		*err = errors.Join(*err, errtrace.Wrap(ferr))
	}
}

// Package flagvalue provides flag.Value implementations
// for codetag's command line.
package flagvalue

import (
	"flag"
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// Getter is a constraint satisfied by pointers to types
// which implement flag.Getter.
type Getter[T any] interface {
	*T
	flag.Getter
}

// List is a flag.Getter for repeatable flags like -touch.
// Every occurrence of the flag is parsed with T's Set
// and appended to the list in command line order.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice to accept zero or more instances of a flag.
//
//	flag.Var(flagvalue.ListOf(&paths), "touch", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the values recorded so far.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String lists the recorded values separated by commas.
func (lv *List[T, PT]) String() string {
	items := make([]string, len(*lv))
	for i, v := range *lv {
		items[i] = fmt.Sprint(PT(&v).Get())
	}
	return strings.Join(items, ", ")
}

// Set parses and appends a single occurrence of the flag.
// The list is left unchanged if the value is rejected.
func (lv *List[T, PT]) Set(s string) error {
	var v T
	if err := PT(&v).Set(s); err != nil {
		return errtrace.Wrap(err)
	}
	*lv = append(*lv, v)
	return nil
}

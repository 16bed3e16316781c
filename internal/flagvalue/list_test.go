package flagvalue

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathValue rejects empty values and blank-padded ones.
type pathValue string

var _ flag.Getter = (*pathValue)(nil)

func (pv *pathValue) Get() any       { return string(*pv) }
func (pv *pathValue) String() string { return string(*pv) }

func (pv *pathValue) Set(s string) error {
	if len(s) == 0 || strings.TrimSpace(s) != s {
		return errors.New("bad path")
	}
	*pv = pathValue(s)
	return nil
}

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc       string
		give       []string
		want       []pathValue
		wantString string
	}{
		{
			desc: "absent",
			give: []string{"-debug"},
		},
		{
			desc:       "separate",
			give:       []string{"-touch", "a.css"},
			want:       []pathValue{"a.css"},
			wantString: "a.css",
		},
		{
			desc:       "joint",
			give:       []string{"-touch=a.css"},
			want:       []pathValue{"a.css"},
			wantString: "a.css",
		},
		{
			desc:       "repeated",
			give:       []string{"-touch", "a.css", "-debug", "-touch=b/c.css", "-touch", "a.css"},
			want:       []pathValue{"a.css", "b/c.css", "a.css"},
			wantString: "a.css, b/c.css, a.css",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)

			var got []pathValue
			list := ListOf(&got)
			fset.Var(list, "touch", "")
			_ = fset.Bool("debug", false, "")
			require.NoError(t, fset.Parse(tt.give))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, list.Get(), "Get")
			assert.Equal(t, tt.wantString, list.String(), "String")
		})
	}
}

func TestList_rejected(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var got []pathValue
	fset.Var(ListOf(&got), "touch", "")

	err := fset.Parse([]string{"-touch=a.css", "-touch= b.css", "-touch", "c.css"})
	assert.ErrorContains(t, err, "bad path")
	assert.Equal(t, []pathValue{"a.css"}, got,
		"values before the rejected one must be kept")
}

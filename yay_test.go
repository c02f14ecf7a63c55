package yay

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yay-lang/yay/core/diag"
	"github.com/yay-lang/yay/core/value"
)

func TestParse(t *testing.T) {
	v, err := Parse([]byte("a: 1\nb: [true, null]\n"))
	require.NoError(t, err)

	want := value.NewObject().
		Set("a", value.NewInt(1)).
		Set("b", value.ArrayOf(value.NewBool(true), value.NewNull()))
	assert.True(t, value.Equal(want, v), "got %s", v)
}

func TestParseString(t *testing.T) {
	v, err := ParseString("42\n")
	require.NoError(t, err)
	assert.True(t, value.Equal(value.NewInt(42), v))
}

func TestParseErrorIsDiagError(t *testing.T) {
	_, err := Parse([]byte("a:\t1\n"))
	require.Error(t, err)

	var derr *diag.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 1, derr.Line)
	assert.Equal(t, 3, derr.Column)
	assert.Contains(t, derr.Message, "Tab not allowed")
}

func TestFilenameDecoratesDiagnostics(t *testing.T) {
	_, err := Parse([]byte("a:\t1\n"), WithFilename("doc.yay"))
	require.Error(t, err)
	assert.Equal(t, "Tab not allowed (use spaces) at 1:3 of <doc.yay>", err.Error())
}

func TestEmptyDocumentMentionsFilename(t *testing.T) {
	_, err := Parse(nil, WithFilename("empty.yay"))
	require.Error(t, err)
	assert.Equal(t, "No value found in document <empty.yay>", err.Error())
}

func TestParseWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v, err := Parse([]byte("true\n"), WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, value.Equal(value.NewBool(true), v))
}

func TestConcurrentParses(t *testing.T) {
	// A parse is a pure function of its input; independent documents
	// may be parsed from any number of goroutines.
	docs := []string{"a: 1\n", "- 1\n- 2\n", "\"s\"\n", "nan\n"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		for _, doc := range docs {
			wg.Add(1)
			go func(src string) {
				defer wg.Done()
				if _, err := Parse([]byte(src)); err != nil {
					t.Errorf("parse(%q): %v", src, err)
				}
			}(doc)
		}
	}
	wg.Wait()
}

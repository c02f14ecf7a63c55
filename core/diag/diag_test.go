package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	t.Run("without_filename", func(t *testing.T) {
		err := New(0, 2, "Tab not allowed (use spaces)")
		assert.Equal(t, "Tab not allowed (use spaces)", err.Error())
		assert.Equal(t, 1, err.Line)
		assert.Equal(t, 3, err.Column)
	})

	t.Run("with_filename", func(t *testing.T) {
		err := New(0, 2, "Tab not allowed (use spaces)")
		err.Filename = "doc.yay"
		assert.Equal(t, "Tab not allowed (use spaces) at 1:3 of <doc.yay>", err.Error())
	})

	t.Run("bare_ignores_filename", func(t *testing.T) {
		err := Bare("No value found in document <%s>", "doc.yay")
		err.Filename = "doc.yay"
		assert.Equal(t, "No value found in document <doc.yay>", err.Error())
		assert.Zero(t, err.Line)
	})

	t.Run("formats_arguments", func(t *testing.T) {
		err := New(4, 9, "Forbidden code point U+%04X", 0xFDD0)
		assert.Equal(t, "Forbidden code point U+FDD0", err.Message)
		assert.Equal(t, 5, err.Line)
		assert.Equal(t, 10, err.Column)
	})
}

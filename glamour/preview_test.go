package glamour_test

import (
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewer_Preview(t *testing.T) {
	t.Parallel()

	t.Run("renders headings and emphasis text", func(t *testing.T) {
		t.Parallel()

		p := &glamour.Previewer{Style: "notty", Width: 60}
		out, err := p.Preview("# Chapter One\n\n**Bold** and *italic*.\n")
		require.NoError(t, err)
		assert.Contains(t, out, "Chapter One")
		assert.Contains(t, out, "Bold")
		assert.Contains(t, out, "italic")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := glamour.NewPreviewer().Preview("  \n")
		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesCmd(t *testing.T) {
	env := setupTestServices(t)
	env.seed(t, sampleAnnotations()...)

	out, err := execute(t, "pages")
	require.NoError(t, err)
	assert.Contains(t, out, "2 page(s):")
	assert.Contains(t, out, "*   1")
	assert.Contains(t, out, "2 annotation(s)")
	assert.Contains(t, out, "1191 x 842")
}

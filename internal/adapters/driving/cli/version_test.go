package cli

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() { version = original })
}

func TestVersionCmd_PrintsBuildInfo(t *testing.T) {
	setupTestServices(t)
	withVersion(t, "v0.3.1")

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "plancanvas version v0.3.1")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	setupTestServices(t)
	withVersion(t, "dev")

	out, err := execute(t, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "dev", strings.TrimSpace(out))
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "version", "extra")

	assert.Error(t, err)
}

package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	binDir := filepath.Join(root, "node_modules", ".bin")
	require.NoError(t, os.MkdirAll(binDir, 0777))
	bin := filepath.Join(binDir, "playwright")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0777))

	found, err := FindUp(filepath.Join("node_modules", ".bin", "playwright"), nested)
	require.NoError(t, err)
	assert.Equal(t, bin, found)

	found, err = FindUp(filepath.Join("node_modules", ".bin", "nope"), nested)
	require.NoError(t, err)
	assert.Equal(t, "", found)
}

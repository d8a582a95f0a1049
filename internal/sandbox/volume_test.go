package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquirePlainDir_ShouldCreateDirectory(t *testing.T) {
	name := "gatherspin-test-" + t.Name()
	defer os.RemoveAll(filepath.Join(os.TempDir(), name))

	// Act
	h, err := acquirePlainDir(name)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "directory", h.Backend)
	st, statErr := os.Stat(h.Path)
	require.NoError(t, statErr)
	assert.True(t, st.IsDir())
}

func TestAcquirePlainDir_ShouldError_WhenVolumeAlreadyExists(t *testing.T) {
	name := "gatherspin-test-dup-" + t.Name()
	defer os.RemoveAll(filepath.Join(os.TempDir(), name))

	_, err := acquirePlainDir(name)
	require.NoError(t, err)

	// Act
	_, err = acquirePlainDir(name)

	// Assert
	require.Error(t, err)
}

func TestOSVolumeRelease_ShouldRemoveDirectoryBackend(t *testing.T) {
	h, err := acquirePlainDir("gatherspin-test-release-" + t.Name())
	require.NoError(t, err)

	// Act
	err = OSVolume{}.Release(h)

	// Assert
	require.NoError(t, err)
	_, statErr := os.Stat(h.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRamBackedSafe_ShouldBeFalse_ForImplausiblyLargeRequest(t *testing.T) {
	assert.False(t, ramBackedSafe(1<<40))
}

func TestCreateEnclosure_ShouldInstallAllStaticFragments(t *testing.T) {
	root := t.TempDir()

	// Act
	enclosure, err := CreateEnclosure(root)

	// Assert
	require.NoError(t, err)
	entries, readErr := os.ReadDir(enclosure)
	require.NoError(t, readErr)
	assert.Len(t, entries, 4)
}

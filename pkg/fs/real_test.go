package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RealFS_Remove_Is_Idempotent_On_Missing_Path(t *testing.T) {
	fsys := NewReal()
	dir := t.TempDir()

	err := fsys.Remove(filepath.Join(dir, "does-not-exist"))

	require.NoError(t, err)
}

func Test_RealFS_OpenFile_Creates_And_Stats(t *testing.T) {
	fsys := NewReal()
	path := filepath.Join(t.TempDir(), "data.bin")

	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 5, info.Size())
}

func Test_RealFS_MkdirAll(t *testing.T) {
	fsys := NewReal()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	err := fsys.MkdirAll(dir, 0o750)
	require.NoError(t, err)

	info, err := fsys.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

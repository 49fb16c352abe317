package storage_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apachemart/pkg/storage"
)

func TestLocalDiskReadWrite(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir(), "http://cdn.test/storage/")

	require.NoError(t, d.Put("products/1.png", []byte("png bytes")))
	assert.True(t, d.Exists("products/1.png"))
	assert.False(t, d.Missing("products/1.png"))

	data, err := d.Get("products/1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)

	rc, err := d.GetStream("products/1.png")
	require.NoError(t, err)
	streamed, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, streamed)

	size, err := d.Size("products/1.png")
	require.NoError(t, err)
	assert.EqualValues(t, len("png bytes"), size)

	mod, err := d.LastModified("products/1.png")
	require.NoError(t, err)
	assert.False(t, mod.IsZero())

	// Trailing slash on the base URL must not double up.
	assert.Equal(t, "http://cdn.test/storage/products/1.png", d.URL("products/1.png"))
}

func TestLocalDiskPutStream(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir(), "http://cdn.test")

	require.NoError(t, d.PutStream("uploads/a.webp", bytes.NewReader([]byte("webp"))))
	data, err := d.Get("uploads/a.webp")
	require.NoError(t, err)
	assert.Equal(t, []byte("webp"), data)
}

func TestLocalDiskCopyMoveDelete(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir(), "http://cdn.test")
	require.NoError(t, d.Put("a/src.jpg", []byte("x")))

	require.NoError(t, d.Copy("a/src.jpg", "a/copy.jpg"))
	assert.True(t, d.Exists("a/src.jpg"))
	assert.True(t, d.Exists("a/copy.jpg"))

	require.NoError(t, d.Move("a/copy.jpg", "b/moved.jpg"))
	assert.True(t, d.Missing("a/copy.jpg"))
	assert.True(t, d.Exists("b/moved.jpg"))

	require.NoError(t, d.Delete("b/moved.jpg"))
	assert.True(t, d.Missing("b/moved.jpg"))

	// Deleting a missing file is not an error.
	assert.NoError(t, d.Delete("b/moved.jpg"))
}

func TestLocalDiskDirectories(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir(), "http://cdn.test")

	require.NoError(t, d.MakeDirectory("images/thumbs"))
	require.NoError(t, d.Put("images/a.png", []byte("a")))
	require.NoError(t, d.Put("images/thumbs/a.png", []byte("a-small")))

	files, err := d.Files("images")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("images", "a.png")}, files)

	all, err := d.AllFiles("images")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dirs, err := d.Directories("images")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("images", "thumbs")}, dirs)

	require.NoError(t, d.DeleteDirectory("images"))
	assert.True(t, d.Missing("images/a.png"))
}

func TestDefaultDiskHelpers(t *testing.T) {
	storage.Connect()
	storage.RegisterDisk("local", storage.NewLocalDisk(t.TempDir(), "http://cdn.test/storage"))

	require.NoError(t, storage.Put("products/9.jpg", []byte("jpg")))
	assert.True(t, storage.Exists("products/9.jpg"))
	assert.False(t, storage.Missing("products/9.jpg"))

	data, err := storage.Get("products/9.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpg"), data)

	require.NoError(t, storage.PutStream("products/10.jpg", bytes.NewReader([]byte("jpg2"))))
	rc, err := storage.GetStream("products/10.jpg")
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	assert.Equal(t, "http://cdn.test/storage/products/9.jpg", storage.URL("products/9.jpg"))

	require.NoError(t, storage.Delete("products/9.jpg"))
	assert.True(t, storage.Missing("products/9.jpg"))
}

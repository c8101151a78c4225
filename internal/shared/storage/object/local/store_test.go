package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmaker-backend/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	key, size, mime, err := store.Save(ctx, "user-1", "notes.txt", strings.NewReader("Jane Doe\nGo developer"))
	require.NoError(t, err)
	assert.Equal(t, int64(21), size)
	assert.Equal(t, "text/plain; charset=utf-8", mime)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, object.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, key), "second delete is a no-op")
}

func TestRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	_, err := store.Open(ctx, "../secret")
	assert.ErrorIs(t, err, object.ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(ctx, "/etc/passwd"), object.ErrInvalidKey)
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := New(t.TempDir()).Save(ctx, "user-1", "cv.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutReadRemove(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "http://localhost:8080/storage/")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, DeliverablesBucket, "d1/informe.pdf", []byte("pdf")))
	_, err := os.Stat(filepath.Join(root, DeliverablesBucket, "d1", "informe.pdf"))
	require.NoError(t, err)

	data, err := s.Read(DeliverablesBucket, "d1/informe.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)
	assert.True(t, s.Exists(DeliverablesBucket, "d1/informe.pdf"))

	require.NoError(t, s.Remove(ctx, DeliverablesBucket, "d1/informe.pdf", "d1/missing.pdf"))
	assert.False(t, s.Exists(DeliverablesBucket, "d1/informe.pdf"))

	_, err = s.Read(DeliverablesBucket, "d1/informe.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStore_PublicURL(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "https://files.example.com/")
	assert.Equal(t, "https://files.example.com/deliverables/d1/a.pdf", s.PublicURL(DeliverablesBucket, "d1/a.pdf"))
	assert.Equal(t, "https://files.example.com/deliverables/etc/passwd", s.PublicURL(DeliverablesBucket, "../../etc/passwd"))
}

func TestLocalStore_PathsStayInsideBucket(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "b", "../../escape.txt", []byte("x")))
	_, err := os.Stat(filepath.Join(root, "b", "escape.txt"))
	assert.NoError(t, err)

	err = s.Put(ctx, "../b", "x.txt", nil)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	err = s.Put(ctx, "b", "", nil)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestLocalStore_CancelledContext(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Put(ctx, "b", "a.txt", nil)
	assert.ErrorIs(t, err, domain.ErrRemoteOperationFailed)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestObjectPaths(t *testing.T) {
	assert.Equal(t, "d1/a.pdf", DeliverablePath("d1", "a.pdf"))
	assert.Equal(t, "d1/2.0/a.pdf", VersionPath("d1", "2.0", "dir/a.pdf"))
}

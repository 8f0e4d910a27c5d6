package files

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeS3) GetFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.objects[path]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return data, nil
}

func (f *fakeS3) PutFile(_ context.Context, path string, data []byte, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[path] = data
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestImageStore_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "major_00.jpg"), []byte("local"), 0o644))

	s3 := &fakeS3{objects: map[string][]byte{"images/cups_01.jpg": []byte("remote")}}
	store := NewImageStore(dir, s3, discard())
	ctx := context.Background()

	data, err := store.Load(ctx, "major_00.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("local"), data)

	data, err = store.Load(ctx, "cups_01.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("remote"), data)

	_, err = store.Load(ctx, "swords_01.jpg")
	assert.ErrorIs(t, err, domain.ErrImageNotFound)

	_, err = NewImageStore(dir, nil, discard()).Load(ctx, "cups_01.jpg")
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
}

func TestImageStore_StaysInsideDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "images")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.jpg"), []byte("secret"), 0o644))

	_, err := NewImageStore(dir, nil, discard()).Load(context.Background(), "../secret.jpg")
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
}

func TestProofStore_Save(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "proofs")
	s3 := &fakeS3{objects: map[string][]byte{}}
	store := NewProofStore(dir, s3, discard())
	store.now = func() time.Time { return time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC) }

	path, err := store.Save(context.Background(), 42, []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "payment_proof_42.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, []byte("jpeg"), s3.objects["proofs/42_20250501T100000.jpg"])
}

func TestProofStore_S3FailureIsNotFatal(t *testing.T) {
	t.Parallel()

	store := NewProofStore(t.TempDir(), &fakeS3{objects: map[string][]byte{}, putErr: errors.New("down")}, discard())

	_, err := store.Save(context.Background(), 1, []byte("jpeg"))
	assert.NoError(t, err)
}

package s3

import (
	"errors"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestClient_WrapMissingObject(t *testing.T) {
	t.Parallel()
	c := NewClient(nil, "tarot", slog.New(slog.DiscardHandler))

	err := c.wrap("read", "images/cups_01.jpg", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "images/cups_01.jpg")

	err = c.wrap("put", "proofs/7.jpg", errors.New("connection reset"))
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}

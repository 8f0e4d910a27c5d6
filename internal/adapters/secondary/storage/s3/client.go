package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/minio/minio-go/v7"

	"github.com/Npcprogramming/Taro2.0/internal/ports/storage"
)

const noSuchKey = "NoSuchKey"

// Client картинки карт и архив чеков в одном бакете
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

var _ storage.IS3Client = (*Client)(nil)

func NewClient(client *minio.Client, bucket string, log *slog.Logger) *Client {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// GetFile отсутствующий объект - ошибка с fs.ErrNotExist
func (c *Client) GetFile(ctx context.Context, path string) ([]byte, error) {
	object, err := c.client.GetObject(ctx, c.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.wrap("get", path, err)
	}
	defer object.Close()

	// GetObject ленивый, ошибка доступа всплывает на чтении
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, c.wrap("read", path, err)
	}
	return data, nil
}

func (c *Client) PutFile(ctx context.Context, path string, data []byte, contentType string) error {
	info, err := c.client.PutObject(ctx, c.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return c.wrap("put", path, err)
	}

	c.log.Debug("object uploaded", "bucket", c.bucket, "path", path, "size", info.Size)
	return nil
}

func (c *Client) wrap(op, path string, err error) error {
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return fmt.Errorf("s3 %s %s: %w", op, path, fs.ErrNotExist)
	}
	return fmt.Errorf("s3 %s %s: %w", op, path, err)
}

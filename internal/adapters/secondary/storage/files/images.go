package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/storage"
)

const imagesPrefix = "images"

// ImageStore картинки карт: сначала локальная папка, затем S3 (если подключён)
type ImageStore struct {
	dir string
	s3  storage.IS3Client
	log *slog.Logger
}

func NewImageStore(dir string, s3 storage.IS3Client, log *slog.Logger) *ImageStore {
	return &ImageStore{dir: dir, s3: s3, log: log}
}

var _ storage.IImageStore = (*ImageStore)(nil)

func (s *ImageStore) Load(ctx context.Context, filename string) ([]byte, error) {
	// имя из каталога, но путь за пределы папки не пускаем
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrImageNotFound, filename)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("failed to read card image", "file", name, "error", err)
	}

	if s.s3 != nil {
		data, s3Err := s.s3.GetFile(ctx, path.Join(imagesPrefix, name))
		if s3Err == nil && len(data) > 0 {
			return data, nil
		}
		s.log.Debug("card image not found in s3", "file", name, "error", s3Err)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, name)
}

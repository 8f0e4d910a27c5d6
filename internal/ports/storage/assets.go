package storage

import "context"

// IImageStore картинки карт; нет картинки - domain.ErrImageNotFound
type IImageStore interface {
	Load(ctx context.Context, filename string) ([]byte, error)
}

// IProofStore хранилище чеков об оплате, возвращает путь сохранённого файла
type IProofStore interface {
	Save(ctx context.Context, userID int64, data []byte) (string, error)
}

package files

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/ports/storage"
)

const (
	proofsPrefix     = "proofs"
	proofContentType = "image/jpeg"
	proofFilePerm    = 0o644
	proofDirPerm     = 0o755
)

// ProofStore чеки об оплате. Локальная копия обязательна, S3 - best effort.
type ProofStore struct {
	dir string
	s3  storage.IS3Client
	log *slog.Logger
	now func() time.Time
}

func NewProofStore(dir string, s3 storage.IS3Client, log *slog.Logger) *ProofStore {
	return &ProofStore{dir: dir, s3: s3, log: log, now: time.Now}
}

var _ storage.IProofStore = (*ProofStore)(nil)

// Save перезаписывает последний чек пользователя и возвращает путь к файлу
func (s *ProofStore) Save(ctx context.Context, userID int64, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, proofDirPerm); err != nil {
		return "", fmt.Errorf("failed to create proofs dir: %w", err)
	}

	name := fmt.Sprintf("payment_proof_%d.jpg", userID)
	local := filepath.Join(s.dir, name)
	if err := os.WriteFile(local, data, proofFilePerm); err != nil {
		return "", fmt.Errorf("failed to write payment proof: %w", err)
	}

	if s.s3 != nil {
		key := path.Join(proofsPrefix, fmt.Sprintf("%d_%s.jpg", userID, s.now().UTC().Format("20060102T150405")))
		if err := s.s3.PutFile(ctx, key, data, proofContentType); err != nil {
			s.log.Warn("failed to upload payment proof to s3", "user_id", userID, "error", err)
		}
	}

	s.log.Info("payment proof saved", "user_id", userID, "path", local)
	return local, nil
}

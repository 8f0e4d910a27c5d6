package tarot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

var errNoPhoto = errors.New("payment proof without photo")

// HandlePhoto присланное фото считаем чеком: сохраняем и отправляем админу на проверку
func (s *Service) HandlePhoto(ctx context.Context, sender domain.Sender, photo domain.PhotoUpload) error {
	if photo.FileID == "" {
		return s.reply(ctx, sender.ChatID, texts.ProofNoPhoto, nil, errNoPhoto)
	}

	data, err := s.TelegramClient.DownloadFile(ctx, photo.FileID)
	if err != nil {
		s.Log.Error("failed to download payment proof",
			"error", err,
			"user_id", sender.UserID,
		)
		return s.reply(ctx, sender.ChatID, texts.ProofDownloadFailed, nil, err)
	}

	path, err := s.Proofs.Save(ctx, sender.UserID, data)
	if err != nil {
		// без локальной копии админ всё равно получит фото
		s.Log.Error("failed to store payment proof",
			"error", err,
			"user_id", sender.UserID,
		)
	}

	adminID, ok := s.mainAdmin()
	if !ok {
		s.Log.Warn("payment proof not forwarded, no admins configured",
			"user_id", sender.UserID,
			"path", path,
		)
		return s.sendMessage(ctx, sender.ChatID, texts.ProofSent, nil)
	}

	caption := texts.FormatProofCaption(sender.Username, sender.UserID)
	filename := fmt.Sprintf("payment_proof_%d.jpg", sender.UserID)
	if _, err := s.TelegramClient.SendPhoto(ctx, adminID, data, filename, caption, nil); err != nil {
		s.Log.Error("failed to forward payment proof",
			"error", err,
			"user_id", sender.UserID,
			"admin_id", adminID,
		)
		return s.reply(ctx, sender.ChatID, texts.GenericError, nil, err)
	}

	s.Log.Info("payment proof forwarded",
		"user_id", sender.UserID,
		"path", path,
	)
	return s.sendMessage(ctx, sender.ChatID, texts.ProofSent, nil)
}

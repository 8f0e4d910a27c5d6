package telegram

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// IClient исходящие действия бота. Методы отправки возвращают message_id.
type IClient interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts *domain.MessageOptions) (int64, error)
	SendPhoto(ctx context.Context, chatID int64, photo []byte, filename string, caption string, opts *domain.MessageOptions) (int64, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int64, text string, keyboard *domain.InlineKeyboard) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int64) error
	AnswerCallbackQuery(ctx context.Context, callbackID string, text string, showAlert bool) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

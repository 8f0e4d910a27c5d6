package testhelpers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/telegram"
)

// ErrMarkdown имитирует отказ Telegram разобрать разметку
var ErrMarkdown = errors.New("Bad Request: can't parse entities")

// SentMessage одно исходящее сообщение или фото
type SentMessage struct {
	ID       int64
	ChatID   int64
	Text     string // текст или подпись к фото
	Photo    []byte
	Filename string
	Opts     *domain.MessageOptions
}

func (m SentMessage) IsPhoto() bool {
	return m.Photo != nil
}

type EditedMessage struct {
	ChatID    int64
	MessageID int64
	Text      string
	Keyboard  *domain.InlineKeyboard
}

type DeletedMessage struct {
	ChatID    int64
	MessageID int64
}

// FakeTelegram записывает всё, что бот отправил
type FakeTelegram struct {
	mu     sync.Mutex
	nextID int64

	Sent     []SentMessage
	Edited   []EditedMessage
	Deleted  []DeletedMessage
	Answered []string

	// Blocked чаты, которые отвечают domain.ErrRecipientUnavailable
	Blocked map[int64]bool
	// RejectMarkdown отвечать ErrMarkdown на сообщения с ParseMode
	RejectMarkdown bool
	DeleteErr      error
	EditErr        error
	Files          map[string][]byte
}

var _ telegram.IClient = (*FakeTelegram)(nil)

func NewFakeTelegram() *FakeTelegram {
	return &FakeTelegram{
		nextID:  100,
		Blocked: make(map[int64]bool),
		Files:   make(map[string][]byte),
	}
}

func (f *FakeTelegram) SendMessage(_ context.Context, chatID int64, text string, opts *domain.MessageOptions) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Blocked[chatID] {
		return 0, fmt.Errorf("sendMessage: %w", domain.ErrRecipientUnavailable)
	}
	if f.RejectMarkdown && opts != nil && opts.ParseMode != "" {
		return 0, ErrMarkdown
	}

	f.nextID++
	f.Sent = append(f.Sent, SentMessage{ID: f.nextID, ChatID: chatID, Text: text, Opts: opts})
	return f.nextID, nil
}

func (f *FakeTelegram) SendPhoto(_ context.Context, chatID int64, photo []byte, filename string, caption string, opts *domain.MessageOptions) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Blocked[chatID] {
		return 0, fmt.Errorf("sendPhoto: %w", domain.ErrRecipientUnavailable)
	}

	f.nextID++
	f.Sent = append(f.Sent, SentMessage{
		ID:       f.nextID,
		ChatID:   chatID,
		Text:     caption,
		Photo:    photo,
		Filename: filename,
		Opts:     opts,
	})
	return f.nextID, nil
}

func (f *FakeTelegram) EditMessageText(_ context.Context, chatID int64, messageID int64, text string, keyboard *domain.InlineKeyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EditErr != nil {
		return f.EditErr
	}
	f.Edited = append(f.Edited, EditedMessage{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: keyboard})
	return nil
}

func (f *FakeTelegram) DeleteMessage(_ context.Context, chatID int64, messageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Deleted = append(f.Deleted, DeletedMessage{ChatID: chatID, MessageID: messageID})
	return f.DeleteErr
}

func (f *FakeTelegram) AnswerCallbackQuery(_ context.Context, callbackID string, _ string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Answered = append(f.Answered, callbackID)
	return nil
}

func (f *FakeTelegram) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.Files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return data, nil
}

// MessagesTo все отправленное в чат
func (f *FakeTelegram) MessagesTo(chatID int64) []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []SentMessage
	for _, m := range f.Sent {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// LastTo последнее сообщение в чат или пустое
func (f *FakeTelegram) LastTo(chatID int64) SentMessage {
	messages := f.MessagesTo(chatID)
	if len(messages) == 0 {
		return SentMessage{}
	}
	return messages[len(messages)-1]
}

func (f *FakeTelegram) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Sent = nil
	f.Edited = nil
	f.Deleted = nil
	f.Answered = nil
}

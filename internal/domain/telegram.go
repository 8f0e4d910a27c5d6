package domain

import "strings"

// дока - https://core.telegram.org/bots/api

// Update - входящее обновление от Telegram Bot API
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// CallbackQuery - нажатие inline кнопки
type CallbackQuery struct {
	ID      string        `json:"id"`
	From    *TelegramUser `json:"from,omitempty"`
	Message *Message      `json:"message,omitempty"`
	Data    *string       `json:"data,omitempty"`
}

// Message - сообщение от Telegram Bot API
type Message struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from,omitempty"`
	Chat      *Chat         `json:"chat"`
	Date      int64         `json:"date"`
	Text      *string       `json:"text,omitempty"`
	Caption   *string       `json:"caption,omitempty"`
	Photo     []PhotoSize   `json:"photo,omitempty"` // от меньшего к большему
	Document  *Document     `json:"document,omitempty"`
	Entities  []Entity      `json:"entities,omitempty"`
}

// TelegramUser - пользователь Telegram (не Profile)
type TelegramUser struct {
	ID           int64   `json:"id"`
	IsBot        bool    `json:"is_bot"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name,omitempty"`
	Username     *string `json:"username,omitempty"`
	LanguageCode *string `json:"language_code,omitempty"`
}

// Chat - чат в Telegram
type Chat struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"` // "private", "group", "supergroup", "channel"
	Title     *string `json:"title,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// Entity - сущность в сообщении (команда, упоминание и т.д.)
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"` // в UTF-16 кодовых единицах
	Length int    `json:"length"`
}

// PhotoSize - один из размеров присланного фото
type PhotoSize struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FileSize     *int   `json:"file_size,omitempty"`
}

// Document - файл, присланный без сжатия
type Document struct {
	FileID   string  `json:"file_id"`
	FileName *string `json:"file_name,omitempty"`
	MimeType *string `json:"mime_type,omitempty"`
}

// IsImage картинка, присланная файлом, а не фото
func (d *Document) IsImage() bool {
	return d != nil && d.MimeType != nil && strings.HasPrefix(*d.MimeType, "image/")
}

// LargestPhoto возвращает самый большой размер фото или nil
func (m *Message) LargestPhoto() *PhotoSize {
	if m == nil || len(m.Photo) == 0 {
		return nil
	}
	return &m.Photo[len(m.Photo)-1]
}

// Sender - кто прислал событие и куда отвечать
type Sender struct {
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string
}

// NewSender собирает Sender из пользователя Telegram и чата
func NewSender(user *TelegramUser, chatID int64) Sender {
	sender := Sender{
		UserID:    user.ID,
		ChatID:    chatID,
		FirstName: user.FirstName,
	}
	if user.Username != nil {
		sender.Username = *user.Username
	}
	return sender
}

// DisplayName имя для обращения, если нет профиля
func (s Sender) DisplayName() string {
	if s.FirstName != "" {
		return s.FirstName
	}
	if s.Username != "" {
		return s.Username
	}
	return DefaultNickname
}

// PhotoUpload - присланное пользователем фото (чек об оплате)
type PhotoUpload struct {
	FileID    string
	MessageID int64
}

// CallbackEvent - разобранный callback с контекстом сообщения-селектора
type CallbackEvent struct {
	ID        string
	MessageID int64
	Callback  Callback
}

package telegram

import "github.com/Npcprogramming/Taro2.0/internal/domain"

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type keyboardButton struct {
	Text string `json:"text"`
}

type replyKeyboardMarkup struct {
	Keyboard       [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard,omitempty"`
}

type replyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

func toInlineMarkup(keyboard *domain.InlineKeyboard) *inlineKeyboardMarkup {
	if keyboard == nil {
		return nil
	}
	markup := &inlineKeyboardMarkup{InlineKeyboard: make([][]inlineKeyboardButton, 0, len(keyboard.Rows))}
	for _, row := range keyboard.Rows {
		buttons := make([]inlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, inlineKeyboardButton{Text: b.Text, CallbackData: b.CallbackData})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}

func toReplyMarkup(keyboard *domain.ReplyKeyboard) *replyKeyboardMarkup {
	if keyboard == nil {
		return nil
	}
	markup := &replyKeyboardMarkup{
		Keyboard:       make([][]keyboardButton, 0, len(keyboard.Rows)),
		ResizeKeyboard: keyboard.Resize,
	}
	for _, row := range keyboard.Rows {
		buttons := make([]keyboardButton, 0, len(row))
		for _, text := range row {
			buttons = append(buttons, keyboardButton{Text: text})
		}
		markup.Keyboard = append(markup.Keyboard, buttons)
	}
	return markup
}

// replyMarkup inline клавиатура важнее reply, обе сразу Telegram не принимает.
// Возвращает nil-интерфейс, если клавиатуры нет, чтобы omitempty сработал.
func replyMarkup(opts *domain.MessageOptions) interface{} {
	if opts == nil {
		return nil
	}
	if opts.Inline != nil {
		return toInlineMarkup(opts.Inline)
	}
	if opts.Reply != nil {
		return toReplyMarkup(opts.Reply)
	}
	if opts.RemoveKeyboard {
		return &replyKeyboardRemove{RemoveKeyboard: true}
	}
	return nil
}

package domain

const ParseModeMarkdown = "Markdown"

type InlineButton struct {
	Text         string
	CallbackData string
}

type InlineKeyboard struct {
	Rows [][]InlineButton
}

// ReplyKeyboard клавиатура под полем ввода
type ReplyKeyboard struct {
	Rows   [][]string
	Resize bool
}

// MessageOptions параметры исходящего сообщения, всё необязательно
type MessageOptions struct {
	ParseMode       string
	Inline          *InlineKeyboard
	Reply           *ReplyKeyboard
	RemoveKeyboard  bool // убрать reply-клавиатуру, если нет другой
	MessageThreadID *int64
}

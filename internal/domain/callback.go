package domain

import "strings"

const (
	callbackCategoryPrefix = "category="
	callbackItemPrefix     = "item="
	// CallbackBackToken возврат селектора к списку мастей
	CallbackBackToken = "back"
	// MaxCallbackDataLen лимит Telegram на callback_data в байтах
	MaxCallbackDataLen = 64
)

type CallbackKind int

const (
	CallbackUnknown CallbackKind = iota
	CallbackCategory
	CallbackItem
	CallbackBack
)

// Callback разобранные данные inline кнопки каталога
type Callback struct {
	Kind     CallbackKind
	Category Suit
	Item     string
}

// CategoryCallbackData данные кнопки масти
func CategoryCallbackData(suit Suit) string {
	return callbackCategoryPrefix + string(suit)
}

// ItemCallbackData данные кнопки карты
func ItemCallbackData(name string) string {
	return callbackItemPrefix + name
}

// ParseCallback разбирает данные кнопки один раз на границе транспорта
func ParseCallback(data string) Callback {
	switch {
	case data == CallbackBackToken:
		return Callback{Kind: CallbackBack}
	case strings.HasPrefix(data, callbackCategoryPrefix):
		return Callback{Kind: CallbackCategory, Category: Suit(strings.TrimPrefix(data, callbackCategoryPrefix))}
	case strings.HasPrefix(data, callbackItemPrefix):
		return Callback{Kind: CallbackItem, Item: strings.TrimPrefix(data, callbackItemPrefix)}
	default:
		return Callback{Kind: CallbackUnknown}
	}
}

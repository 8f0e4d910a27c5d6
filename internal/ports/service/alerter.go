package service

import "context"

// IAlerterService шлёт сообщения об ошибках в служебный чат.
// Реализация может заглушить повтор того же текста.
type IAlerterService interface {
	SendAlert(ctx context.Context, message string) error
}

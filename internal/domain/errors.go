package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadyDrawn         = errors.New("daily card already drawn today")
	ErrCardNotFound         = errors.New("card not found")
	ErrImageNotFound        = errors.New("image not found")
	ErrInvalidBirthDate     = errors.New("invalid birth date")
	ErrNotAdmin             = errors.New("user is not an admin")
	ErrEmptyCatalog         = errors.New("catalog is empty")
	// ErrRecipientUnavailable бот заблокирован или чат недоступен
	ErrRecipientUnavailable = errors.New("recipient unavailable")
)

// BusinessError ошибка бизнес-логики, о которой пользователю уже сообщили
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

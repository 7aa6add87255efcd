package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound возвращается хранилищами и use case'ами, если запись не найдена
var ErrNotFound = errors.New("not found")

// ValidationError - некорректный запрос. Содержит все нарушенные правила сразу.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// NewValidationError возвращает nil, если список проблем пуст
func NewValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// StoreError - хранилище не смогло выполнить операцию. Не ретраится.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStoreError оборачивает ошибку хранилища, не трогая ErrNotFound и уже обернутые ошибки
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var storeErr *StoreError
	if errors.Is(err, ErrNotFound) || errors.As(err, &storeErr) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ErrPropertyNotFound - запись истории ссылается на несуществующий объект
var ErrPropertyNotFound = errors.New("property not found")

// ErrNoPropertyTraces - у объекта нет записей истории для удаления
var ErrNoPropertyTraces = errors.New("no property traces found for this property")

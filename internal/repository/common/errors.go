package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Общие ошибки для всех репозиториев
var (
	ErrInvalidID       = errors.New("invalid tagged id")
	ErrIncompletePatch = errors.New("incomplete patch")
)

// PersistenceError оборачивает любую ошибку обращения к хранилищу:
// недоступность, нарушение уникального индекса, некорректный запрос.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collection, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Collection: collection, Err: err}
}

// IsPersistence сообщает, что ошибка пришла из слоя хранения.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// IsDuplicate сообщает о нарушении уникального индекса.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

package models

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// IDNamespace префикс всех идентификаторов платформы.
const IDNamespace = "igt"

// idSuffixBytes длина случайной части идентификатора (24 hex-символа).
const idSuffixBytes = 12

// Model тип сущности, зашитый в идентификатор.
type Model string

const (
	ModelUser     Model = "user"
	ModelCategory Model = "category"
	ModelListing  Model = "listing"
	ModelSponsor  Model = "sponsor"
	ModelReport   Model = "report"
)

// TaggedID внешний идентификатор вида igt.<model>.<hex>.
type TaggedID string

// NewID генерирует новый идентификатор для указанного типа сущности.
func NewID(kind Model) TaggedID {
	buf := make([]byte, idSuffixBytes)
	if _, err := rand.Read(buf); err != nil {
		panic("models: crypto/rand недоступен: " + err.Error())
	}
	return TaggedID(IDNamespace + "." + string(kind) + "." + hex.EncodeToString(buf))
}

// Kind возвращает тип сущности из идентификатора.
func (id TaggedID) Kind() Model {
	parts := strings.SplitN(string(id), ".", 3)
	if len(parts) != 3 {
		return ""
	}
	return Model(parts[1])
}

// Suffix возвращает случайную часть идентификатора.
func (id TaggedID) Suffix() string {
	parts := strings.SplitN(string(id), ".", 3)
	if len(parts) != 3 {
		return ""
	}
	return parts[2]
}

// Valid проверяет формат идентификатора.
func (id TaggedID) Valid() bool {
	parts := strings.SplitN(string(id), ".", 3)
	if len(parts) != 3 || parts[0] != IDNamespace || parts[1] == "" {
		return false
	}
	if len(parts[2]) != idSuffixBytes*2 {
		return false
	}
	_, err := hex.DecodeString(parts[2])
	return err == nil
}

// Is сообщает, принадлежит ли идентификатор указанному типу.
func (id TaggedID) Is(kind Model) bool {
	return id.Valid() && id.Kind() == kind
}

func (id TaggedID) String() string {
	return string(id)
}

package common

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter фильтр запроса к коллекции.
type Filter = bson.M

// Update выражение обновления ($set, $push и т.д.).
type Update = bson.M

// FindOptions параметры выборки для FindManyItems.
type FindOptions struct {
	Skip  int64
	Limit int64
	Sort  bson.D
}

// Paginate переводит номер страницы (с 1) и размер страницы в skip/limit.
// Страницы меньше 1 считаются первой.
func Paginate(page, pageSize int64, sort bson.D) FindOptions {
	if page < 1 {
		page = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}
	return FindOptions{
		Skip:  (page - 1) * pageSize,
		Limit: pageSize,
		Sort:  sort,
	}
}

// ParseOrder разбирает токен "<поле>:<направление>" через таблицу полей.
// Неизвестное поле даёт пустую сортировку (порядок хранилища).
func ParseOrder(order string, fields map[string]string) bson.D {
	if order == "" {
		return nil
	}
	field, dir, _ := strings.Cut(order, ":")
	key, ok := fields[field]
	if !ok {
		return nil
	}
	direction := -1
	if dir == "asc" {
		direction = 1
	}
	return bson.D{{Key: key, Value: direction}}
}

// ContainsAny регулярное выражение без учёта регистра, совпадающее с любым из слов.
func ContainsAny(words string) primitive.Regex {
	parts := strings.Fields(words)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return primitive.Regex{Pattern: strings.Join(parts, "|"), Options: "i"}
}

// Contains регулярное выражение для поиска подстроки без учёта регистра.
func Contains(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

package common

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// StorageKey восстанавливает ObjectID хранилища из суффикса внешнего идентификатора.
func StorageKey(id models.TaggedID) (primitive.ObjectID, error) {
	if !id.Valid() {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	oid, err := primitive.ObjectIDFromHex(id.Suffix())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// ByKey фильтр по ObjectID, полученному из идентификатора.
func ByKey(id models.TaggedID) (Filter, error) {
	key, err := StorageKey(id)
	if err != nil {
		return nil, err
	}
	return Filter{"_id": key}, nil
}

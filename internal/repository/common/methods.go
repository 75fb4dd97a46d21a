package common

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ignatzorin/marketplace-backend/internal/metrics"
)

// AddConfig описывает вставку модели M в виде документа D.
type AddConfig[M, D any] struct {
	Collection string
	ToDocument func(M) (D, error)
}

// AddItem возвращает операцию вставки одного документа.
// При успехе возвращается исходная модель без изменений.
func AddItem[M, D any](db *mongo.Database, cfg AddConfig[M, D]) func(context.Context, M) (M, error) {
	coll := db.Collection(cfg.Collection)
	return func(ctx context.Context, model M) (M, error) {
		var zero M
		doc, err := cfg.ToDocument(model)
		if err != nil {
			return zero, wrap("insert", cfg.Collection, err)
		}

		done := metrics.ObserveStore("insert", cfg.Collection)
		_, err = coll.InsertOne(ctx, doc)
		done(err)
		if err != nil {
			return zero, wrap("insert", cfg.Collection, err)
		}
		return model, nil
	}
}

// FindConfig описывает поиск одного документа по аргументам A.
type FindConfig[A, D, M any] struct {
	Collection string
	ToFilter   func(A) (Filter, error)
	ToModel    func(D) M
}

// FindItem возвращает операцию поиска одного документа.
// Отсутствие документа не ошибка: возвращается nil, nil.
func FindItem[A, D, M any](db *mongo.Database, cfg FindConfig[A, D, M]) func(context.Context, A) (*M, error) {
	coll := db.Collection(cfg.Collection)
	return func(ctx context.Context, args A) (*M, error) {
		filter, err := cfg.ToFilter(args)
		if err != nil {
			return nil, wrap("find one", cfg.Collection, err)
		}

		var doc D
		done := metrics.ObserveStore("find_one", cfg.Collection)
		err = coll.FindOne(ctx, filter).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			done(nil)
			return nil, nil
		}
		done(err)
		if err != nil {
			return nil, wrap("find one", cfg.Collection, err)
		}

		model := cfg.ToModel(doc)
		return &model, nil
	}
}

// Page результат постраничной выборки. Total заполняется только по запросу.
type Page[M any] struct {
	Total   *int64
	Results []M
}

// FindManyConfig описывает постраничную выборку.
// ToCountFilter нужен, когда фильтр выборки нельзя использовать для подсчёта
// (например, $near); по умолчанию используется ToFilter.
type FindManyConfig[A, D, M any] struct {
	Collection    string
	ToFilter      func(A) (Filter, error)
	ToCountFilter func(A) (Filter, error)
	ToOptions     func(A) FindOptions
	Counted       func(A) bool
	ToModel       func(D) M
}

// FindManyItems возвращает операцию постраничной выборки.
// Подсчёт выполняется отдельным запросом по тому же фильтру до skip/limit.
func FindManyItems[A, D, M any](db *mongo.Database, cfg FindManyConfig[A, D, M]) func(context.Context, A) (Page[M], error) {
	coll := db.Collection(cfg.Collection)
	return func(ctx context.Context, args A) (Page[M], error) {
		filter, err := cfg.ToFilter(args)
		if err != nil {
			return Page[M]{}, wrap("find", cfg.Collection, err)
		}

		opts := options.Find()
		if cfg.ToOptions != nil {
			o := cfg.ToOptions(args)
			if o.Skip > 0 {
				opts.SetSkip(o.Skip)
			}
			if o.Limit > 0 {
				opts.SetLimit(o.Limit)
			}
			if len(o.Sort) > 0 {
				opts.SetSort(o.Sort)
			}
		}

		results, err := findAll(ctx, coll, cfg.Collection, filter, opts, cfg.ToModel)
		if err != nil {
			return Page[M]{}, err
		}
		page := Page[M]{Results: results}

		if cfg.Counted != nil && cfg.Counted(args) {
			countFilter := filter
			if cfg.ToCountFilter != nil {
				if countFilter, err = cfg.ToCountFilter(args); err != nil {
					return Page[M]{}, wrap("count", cfg.Collection, err)
				}
			}
			done := metrics.ObserveStore("count", cfg.Collection)
			total, err := coll.CountDocuments(ctx, countFilter)
			done(err)
			if err != nil {
				return Page[M]{}, wrap("count", cfg.Collection, err)
			}
			page.Total = &total
		}

		return page, nil
	}
}

// FindAllConfig описывает выборку всех документов коллекции.
// Filter вызывается на каждый запрос и не зависит от аргументов.
type FindAllConfig[D, M any] struct {
	Collection string
	Filter     func() Filter
	ToModel    func(D) M
}

// FindAll возвращает операцию выборки всех подходящих документов.
func FindAll[D, M any](db *mongo.Database, cfg FindAllConfig[D, M]) func(context.Context) ([]M, error) {
	coll := db.Collection(cfg.Collection)
	return func(ctx context.Context) ([]M, error) {
		filter := Filter{}
		if cfg.Filter != nil {
			filter = cfg.Filter()
		}
		return findAll(ctx, coll, cfg.Collection, filter, options.Find(), cfg.ToModel)
	}
}

func findAll[D, M any](ctx context.Context, coll *mongo.Collection, name string, filter Filter, opts *options.FindOptions, toModel func(D) M) ([]M, error) {
	done := metrics.ObserveStore("find", name)
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		done(err)
		return nil, wrap("find", name, err)
	}

	var docs []D
	err = cur.All(ctx, &docs)
	done(err)
	if err != nil {
		return nil, wrap("find", name, err)
	}

	results := make([]M, 0, len(docs))
	for _, d := range docs {
		results = append(results, toModel(d))
	}
	return results, nil
}

// UpdateConfig описывает частичное обновление одного документа.
type UpdateConfig[A any] struct {
	Collection string
	ToFilter   func(A) (Filter, error)
	ToUpdate   func(A) (Update, error)
}

// UpdateOne возвращает операцию обновления одного документа.
// Пустое выражение обновления не отправляется в хранилище.
func UpdateOne[A any](db *mongo.Database, cfg UpdateConfig[A]) func(context.Context, A) error {
	coll := db.Collection(cfg.Collection)
	return func(ctx context.Context, args A) error {
		filter, err := cfg.ToFilter(args)
		if err != nil {
			return wrap("update", cfg.Collection, err)
		}
		update, err := cfg.ToUpdate(args)
		if err != nil {
			return wrap("update", cfg.Collection, err)
		}
		if len(update) == 0 {
			return nil
		}

		done := metrics.ObserveStore("update", cfg.Collection)
		_, err = coll.UpdateOne(ctx, filter, update)
		done(err)
		return wrap("update", cfg.Collection, err)
	}
}

// DeleteConfig описывает удаление одного документа.
type DeleteConfig[A any] struct {
	Collection string
	ToFilter   func(A) (Filter, error)
}

// DeleteOne возвращает операцию удаления не более одного документа.
func DeleteOne[A any](db *mongo.Database, cfg DeleteConfig[A]) func(context.Context, A) error {
	coll := db.Collection(cfg.Collection)
	return func(ctx context.Context, args A) error {
		filter, err := cfg.ToFilter(args)
		if err != nil {
			return wrap("delete", cfg.Collection, err)
		}

		done := metrics.ObserveStore("delete", cfg.Collection)
		_, err = coll.DeleteOne(ctx, filter)
		done(err)
		return wrap("delete", cfg.Collection, err)
	}
}

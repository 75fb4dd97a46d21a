package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

// Mongo держит единственный клиент процесса и выбранную базу.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect подключается к MongoDB и проверяет соединение ping-запросом.
// timeout ограничивает и подключение, и ping.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: не удалось подключиться: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping не прошёл: %w", err)
	}

	return &Mongo{Client: client, DB: client.Database(database)}, nil
}

// Ping проверяет доступность сервера.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close закрывает клиент и все его соединения.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: ошибка отключения: %w", err)
	}
	return nil
}

// collectionIndexes индексы, без которых проверки уникальности и поиск рядом с точкой не работают.
var collectionIndexes = map[string][]mongo.IndexModel{
	repository.UsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email_unique").SetUnique(true)},
	},
	repository.CategoriesCollection: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("slug_unique").SetUnique(true)},
	},
	repository.ListingsCollection: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("slug_unique").SetUnique(true)},
		{Keys: bson.D{{Key: "_location", Value: "2dsphere"}}, Options: options.Index().SetName("location_2dsphere")},
		{Keys: bson.D{{Key: "_userId", Value: 1}}, Options: options.Index().SetName("user_id")},
	},
	repository.ReportsCollection: {
		{Keys: bson.D{{Key: "_listingId", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("listing_status")},
	},
}

// EnsureIndexes создаёт недостающие индексы. Существующие индексы с теми же
// именами и ключами сервер пропускает.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, name := range []string{
		repository.UsersCollection,
		repository.CategoriesCollection,
		repository.ListingsCollection,
		repository.ReportsCollection,
	} {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, collectionIndexes[name]); err != nil {
			return fmt.Errorf("mongo: не удалось создать индексы %s: %w", name, err)
		}
	}
	return nil
}

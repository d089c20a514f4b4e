// Package mongo implementa core.Repository sobre MongoDB
// (go.mongodb.org/mongo-driver/v2). Es el driver primario: el registro
// de usuario vive como documento único y UpdateRefreshToken es un único
// UpdateByID, que es lo que hace segura la rotación concurrente.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dropDatabas3/accountd/internal/store/core"
)

const usersCollection = "users"

// Collation case-insensitive para unicidad y lookup de email/username.
var ciCollation = &options.Collation{Locale: "en", Strength: 2}

type Store struct {
	client *mongo.Client
	users  *mongo.Collection
}

// New conecta al cluster y asegura los índices únicos. El ping inicial es
// best-effort: si la DB está caída al arrancar, la app igual levanta.
func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	s := &Store{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err == nil {
		if err := s.ensureIndexes(pingCtx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return s, nil
}

// ensureIndexes crea los índices únicos case-insensitive de username y email.
func (s *Store) ensureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(ciCollation),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(ciCollation),
		},
	}
	if _, err := s.users.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("mongo: ensure indexes: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*core.User, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "email", Value: identifier}},
		bson.D{{Key: "username", Value: identifier}},
	}}}

	var u core.User
	err := s.users.FindOne(ctx, filter, options.FindOne().SetCollation(ciCollation)).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	var u core.User
	err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) UpdateRefreshToken(ctx context.Context, userID, token string) error {
	var update bson.D
	if token == "" {
		// Logout: $unset deja el documento sin campo, equivalente a "".
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "currentRefreshToken", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		}
	} else {
		update = bson.D{{Key: "$set", Value: bson.D{
			{Key: "currentRefreshToken", Value: token},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}}
	}

	res, err := s.users.UpdateByID(ctx, userID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// MongoStore keeps one collection per entity kind and leans on the server for
// id generation (ObjectID hex) and per-document atomicity. There is no
// cross-document transaction; the contract does not promise one.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mongoList decodes a full collection, failing open on any error.
func mongoList[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		slog.Warn("mongostore: list failed, treating as empty", "collection", coll.Name(), "error", err)
		return []T{}, nil
	}
	recs := []T{}
	if err := cur.All(ctx, &recs); err != nil {
		slog.Warn("mongostore: decode failed, treating as empty", "collection", coll.Name(), "error", err)
		return []T{}, nil
	}
	return recs, nil
}

func mongoCreate[T any](ctx context.Context, coll *mongo.Collection, rec T, setID func(*T, string)) (T, error) {
	setID(&rec, primitive.NewObjectID().Hex())
	if _, err := coll.InsertOne(ctx, rec); err != nil {
		var zero T
		return zero, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return rec, nil
}

// mongoUpdate applies a $set built from the patch fields and returns the
// post-update document. An empty patch degenerates to a lookup.
func mongoUpdate[T any](ctx context.Context, coll *mongo.Collection, id string, fields map[string]any) (T, error) {
	var rec T
	filter := bson.M{"_id": id}
	if len(fields) == 0 {
		err := coll.FindOne(ctx, filter).Decode(&rec)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rec, ErrNotFound
		}
		if err != nil {
			return rec, fmt.Errorf("find in %s: %w", coll.Name(), err)
		}
		return rec, nil
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("update in %s: %w", coll.Name(), err)
	}
	return rec, nil
}

func mongoDelete(ctx context.Context, coll *mongo.Collection, id string) error {
	// Deleting a missing id is a no-op success.
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	return nil
}

type mongoLaptops struct{ coll *mongo.Collection }

func (s *MongoStore) Laptops() LaptopStore { return mongoLaptops{s.db.Collection("laptops")} }

func (m mongoLaptops) List(ctx context.Context) ([]models.Laptop, error) {
	return mongoList[models.Laptop](ctx, m.coll)
}
func (m mongoLaptops) Create(ctx context.Context, l models.Laptop) (models.Laptop, error) {
	return mongoCreate(ctx, m.coll, l, func(l *models.Laptop, id string) { l.ID = id })
}
func (m mongoLaptops) Update(ctx context.Context, id string, p models.LaptopPatch) (models.Laptop, error) {
	return mongoUpdate[models.Laptop](ctx, m.coll, id, p.Fields())
}
func (m mongoLaptops) Delete(ctx context.Context, id string) error {
	return mongoDelete(ctx, m.coll, id)
}

type mongoReviews struct{ coll *mongo.Collection }

func (s *MongoStore) Reviews() ReviewStore { return mongoReviews{s.db.Collection("reviews")} }

func (m mongoReviews) List(ctx context.Context) ([]models.Review, error) {
	return mongoList[models.Review](ctx, m.coll)
}
func (m mongoReviews) Create(ctx context.Context, r models.Review) (models.Review, error) {
	return mongoCreate(ctx, m.coll, r, func(r *models.Review, id string) { r.ID = id })
}
func (m mongoReviews) Update(ctx context.Context, id string, p models.ReviewPatch) (models.Review, error) {
	return mongoUpdate[models.Review](ctx, m.coll, id, p.Fields())
}
func (m mongoReviews) Delete(ctx context.Context, id string) error {
	return mongoDelete(ctx, m.coll, id)
}

type mongoMessages struct{ coll *mongo.Collection }

func (s *MongoStore) Messages() MessageStore { return mongoMessages{s.db.Collection("messages")} }

func (m mongoMessages) List(ctx context.Context) ([]models.Message, error) {
	return mongoList[models.Message](ctx, m.coll)
}
func (m mongoMessages) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	return mongoCreate(ctx, m.coll, msg, func(msg *models.Message, id string) { msg.ID = id })
}
func (m mongoMessages) Delete(ctx context.Context, id string) error {
	return mongoDelete(ctx, m.coll, id)
}

type mongoUsers struct{ coll *mongo.Collection }

func (s *MongoStore) Users() UserStore { return mongoUsers{s.db.Collection("users")} }

func (m mongoUsers) List(ctx context.Context) ([]models.User, error) {
	return mongoList[models.User](ctx, m.coll)
}
func (m mongoUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	return mongoCreate(ctx, m.coll, u, func(u *models.User, id string) { u.ID = id })
}
func (m mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}
func (m mongoUsers) Delete(ctx context.Context, id string) error {
	return mongoDelete(ctx, m.coll, id)
}

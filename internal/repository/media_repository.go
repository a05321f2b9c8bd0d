package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MediaRepo struct {
	db  *mongo.Database
	col *mongo.Collection
}

// NewMediaRepo ensures the leaderboard and kind indexes. Queries work without them,
// so a failure is logged and the repo is still returned.
func NewMediaRepo(db *mongo.Database, collection string, log *zap.SugaredLogger) *MediaRepo {
	col := db.Collection(collection)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "downloads", Value: -1}}, Options: options.Index().SetName("downloads_desc_idx")},
		{Keys: bson.D{{Key: "kind", Value: 1}}, Options: options.Index().SetName("kind_idx")},
	}); err != nil {
		log.Warnw("media index creation failed", "collection", collection, "error", err)
	}
	return &MediaRepo{db: db, col: col}
}

func (r *MediaRepo) Insert(ctx context.Context, m *models.Media) (string, error) {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	m.ID = oid
	return oid.Hex(), nil
}

func (r *MediaRepo) List(ctx context.Context, f Filter) ([]*models.Media, error) {
	filter := bson.M{}
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.Query != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
	}
	return r.find(ctx, filter, options.Find())
}

func (r *MediaRepo) IncrementDownloads(ctx context.Context, id string, at time.Time) (*models.Media, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"downloads": 1},
			"$set": bson.M{"updated_at": at.UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var m models.Media
	if err := res.Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	m.Normalize()
	return &m, nil
}

func (r *MediaRepo) Top(ctx context.Context, limit int64) ([]*models.Media, error) {
	opts := options.Find().SetSort(bson.D{{Key: "downloads", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *MediaRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func (r *MediaRepo) CollectionNames(ctx context.Context) ([]string, error) {
	return r.db.ListCollectionNames(ctx, bson.D{})
}

func (r *MediaRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Media, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Media{}
	for cur.Next(ctx) {
		var m models.Media
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		m.Normalize()
		out = append(out, &m)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

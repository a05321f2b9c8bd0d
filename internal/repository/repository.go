package repository

import (
	"context"
	"fmt"
	"time"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter narrows List. Empty fields impose no constraint.
type Filter struct {
	Kind  string
	Query string // case-insensitive substring of title
}

type Store interface {
	Insert(ctx context.Context, m *models.Media) (string, error)
	List(ctx context.Context, f Filter) ([]*models.Media, error)
	// IncrementDownloads atomically adds one download and returns the updated record.
	IncrementDownloads(ctx context.Context, id string, at time.Time) (*models.Media, error)
	Top(ctx context.Context, limit int64) ([]*models.Media, error)

	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %w", models.ErrInvalidID, err)
	}
	return oid, nil
}

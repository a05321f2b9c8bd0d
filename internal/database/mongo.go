package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured = errors.New("mongodb uri or database name not configured")
	ErrUnreachable   = errors.New("mongodb not reachable")
)

// ConnectMongo returns database handle and full client. The initial ping is retried with
// exponential backoff until connectTimeout elapses. When every ping fails the handles are
// still returned together with an error wrapping ErrUnreachable: the driver keeps
// monitoring the deployment and operations succeed once it is back.
func ConnectMongo(ctx context.Context, uri, dbName string, connectTimeout time.Duration, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	if uri == "" || dbName == "" {
		return nil, nil, ErrNotConfigured
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		logger.Errorf("MongoDB connection failed: %v", err)
		return nil, nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = connectTimeout
	pingTimeout := 5 * time.Second
	if connectTimeout > 0 && connectTimeout < pingTimeout {
		pingTimeout = connectTimeout
	}
	attempt := 0
	ping := func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			logger.Warnw("MongoDB ping failed", "attempt", attempt, "error", err)
			return err
		}
		return nil
	}
	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		logger.Warnw("MongoDB not reachable yet, driver will keep retrying", "database", dbName, "error", err)
		return client.Database(dbName), client, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	logger.Infow("MongoDB connected successfully", "database", dbName)
	return client.Database(dbName), client, nil
}

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newTestMongoRepo connects to MONGODB_TEST_URI and returns a repo on a throwaway database.
func newTestMongoRepo(t *testing.T) *MediaRepo {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("uriel_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewMediaRepo(db, "media", zap.NewNop().Sugar())
}

func TestNewMediaRepo_LogsIndexFailure(t *testing.T) {
	// mongo.Connect does not dial, so this only fails once the index command needs a server
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	core, logs := observer.New(zap.WarnLevel)
	r := NewMediaRepo(client.Database("uriel"), "media", zap.New(core).Sugar())
	require.NotNil(t, r)

	entries := logs.FilterMessage("media index creation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "media", entries[0].ContextMap()["collection"])
}

func TestMediaRepo_CreateListIncrementTop(t *testing.T) {
	r := newTestMongoRepo(t)
	ctx := context.Background()

	ids := seed(t, r,
		models.Media{Title: "Food Wars", Kind: models.KindAnime, Tags: []string{}, Downloads: 5},
		models.Media{Title: "The FOOD Lab", Kind: models.KindSeries, Tags: []string{}, Downloads: 3},
		models.Media{Title: "Heat", Kind: models.KindMovie, Tags: []string{}, Downloads: 8},
		models.Media{Title: "Seafood (1999)", Kind: models.KindMovie, Tags: []string{}, Downloads: 1},
		models.Media{Title: "Akira", Kind: models.KindAnime, Tags: []string{}, Downloads: 9},
	)

	foo, err := r.List(ctx, Filter{Query: "foo"})
	require.NoError(t, err)
	assert.Len(t, foo, 3)

	fooMovies, err := r.List(ctx, Filter{Query: "FOO", Kind: "movie"})
	require.NoError(t, err)
	require.Len(t, fooMovies, 1)
	assert.Equal(t, "Seafood (1999)", fooMovies[0].Title)

	literal, err := r.List(ctx, Filter{Query: "(1999)"})
	require.NoError(t, err)
	assert.Len(t, literal, 1)

	top, err := r.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{9, 8, 5}, []int64{top[0].Downloads, top[1].Downloads, top[2].Downloads})

	updated, err := r.IncrementDownloads(ctx, ids[3], time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Downloads)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestMediaRepo_IncrementDownloadsConcurrently(t *testing.T) {
	r := newTestMongoRepo(t)
	ids := seed(t, r, models.Media{Title: "Heat", Kind: models.KindMovie, Tags: []string{}})
	const n = 25

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.IncrementDownloads(context.Background(), ids[0], time.Now())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := r.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(n), all[0].Downloads)
}

func TestMediaRepo_IncrementDownloadsErrors(t *testing.T) {
	r := newTestMongoRepo(t)

	_, err := r.IncrementDownloads(context.Background(), "xyz", time.Now())
	require.ErrorIs(t, err, models.ErrInvalidID)

	_, err = r.IncrementDownloads(context.Background(), primitive.NewObjectID().Hex(), time.Now())
	require.ErrorIs(t, err, models.ErrNotFound)
}

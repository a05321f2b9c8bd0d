package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps media in process memory, in insertion order.
type MemoryRepo struct {
	mu         sync.RWMutex
	collection string
	order      []primitive.ObjectID
	data       map[primitive.ObjectID]*models.Media
}

func NewMemoryRepo(collection string) *MemoryRepo {
	return &MemoryRepo{
		collection: collection,
		data:       make(map[primitive.ObjectID]*models.Media),
	}
}

func (r *MemoryRepo) Insert(ctx context.Context, m *models.Media) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cp := m.Clone()
	cp.ID = primitive.NewObjectID()
	cp.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cp.ID] = cp
	r.order = append(r.order, cp.ID)

	m.ID = cp.ID
	return cp.ID.Hex(), nil
}

func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]*models.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(f.Query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Media{}
	for _, id := range r.order {
		m := r.data[id]
		if f.Kind != "" && string(m.Kind) != f.Kind {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
			continue
		}
		out = append(out, m.Clone())
	}
	return out, nil
}

func (r *MemoryRepo) IncrementDownloads(ctx context.Context, id string, at time.Time) (*models.Media, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.data[oid]
	if !ok {
		return nil, models.ErrNotFound
	}
	ts := at.UTC()
	m.Downloads++
	m.UpdatedAt = &ts
	return m.Clone(), nil
}

func (r *MemoryRepo) Top(ctx context.Context, limit int64) ([]*models.Media, error) {
	all, err := r.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Downloads > all[j].Downloads })
	if limit > 0 && int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error { return ctx.Err() }

func (r *MemoryRepo) CollectionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{r.collection}, nil
}

package service

import (
	"context"
	"time"

	"github.com/fathima-sithara/uriel-service/internal/repository"
	"github.com/fathima-sithara/uriel-service/internal/utils"
)

const (
	maxCollections = 10
	probeTimeout   = 3 * time.Second
)

// Diagnostics is the body of GET /test.
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type HealthService struct {
	store   repository.Store
	urlSet  bool
	nameSet bool
}

func NewHealthService(store repository.Store, urlSet, nameSet bool) *HealthService {
	return &HealthService{store: store, urlSet: urlSet, nameSet: nameSet}
}

// Diagnose never fails: probe errors are rendered into the Database field.
func (h *HealthService) Diagnose(ctx context.Context) (d Diagnostics) {
	d = Diagnostics{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		DatabaseURL:      setFlag(h.urlSet),
		DatabaseName:     setFlag(h.nameSet),
	}
	defer func() {
		if r := recover(); r != nil {
			d.Database = "❌ Error: " + utils.Truncate(toString(r), 50)
		}
	}()

	if h.store == nil {
		d.Database = "⚠️  Available but not initialized"
		return d
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		d.Database = "⚠️  Available but not reachable: " + utils.Truncate(err.Error(), 50)
		return d
	}
	d.Database = "✅ Available"
	d.ConnectionStatus = "Connected"

	names, err := h.store.CollectionNames(ctx)
	if err != nil {
		d.Database = "⚠️  Connected but Error: " + utils.Truncate(err.Error(), 50)
		return d
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	d.Collections = names
	d.Database = "✅ Connected & Working"
	return d
}

func setFlag(ok bool) string {
	if ok {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func toString(v interface{}) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unexpected panic"
}

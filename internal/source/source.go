// Package source holds the record fetchers, one per source family, plus the
// out-of-band insert path for new service requests.
package source

import (
	"context"
	"fmt"

	"jetdash/internal/config"
	"jetdash/internal/model"
)

// Store tables of the three source families.
const (
	tableBookings = "booking_requests"
	tableRequests = "user_requests"
	tableCO2      = "co2_certificate_requests"
)

// Source fetches one family's records for a user, already normalized and
// ordered by created_at descending.
type Source interface {
	Name() string // family tag, see model.Family*
	Fetch(ctx context.Context, userID string) ([]model.UnifiedRequest, error)
}

// NewServiceRequest is the write-path input. Mutations against the store
// happen out-of-band of the view; a re-fetch observes them.
type NewServiceRequest struct {
	UserID      string
	Type        string // raw tag, remapped on the way back out
	ClientName  string
	ClientEmail string
	ClientPhone string
	Data        map[string]any
}

type Inserter interface {
	InsertServiceRequest(ctx context.Context, n NewServiceRequest) (model.UnifiedRequest, error)
}

// NewFromConfig builds the three family sources and the inserter for the
// configured backend.
func NewFromConfig(cfg config.Backend) ([]Source, Inserter, error) {
	switch cfg.Type {
	case "rest":
		c := newRESTClient(cfg.REST)
		return restSources(c), c, nil
	case "postgres":
		st, err := openPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return pgSources(st), st, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

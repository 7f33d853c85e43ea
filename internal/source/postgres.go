package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"jetdash/internal/config"
	"jetdash/internal/model"
	"jetdash/internal/normalize"
)

// pgStore runs the family queries directly against Postgres. Rows are
// lowered to the same map shape the REST backend produces so both feed the
// one normalizer.
type pgStore struct {
	db *sql.DB
}

func openPostgres(cfg config.PostgresBackend) (*pgStore, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &pgStore{db: db}, nil
}

func pgSources(st *pgStore) []Source {
	return []Source{
		&pgSource{st: st, family: model.FamilyBooking},
		&pgSource{st: st, family: model.FamilyService},
		&pgSource{st: st, family: model.FamilyCO2},
	}
}

type pgSource struct {
	st     *pgStore
	family string
}

func (s *pgSource) Name() string { return s.family }

func (s *pgSource) Fetch(ctx context.Context, userID string) ([]model.UnifiedRequest, error) {
	switch s.family {
	case model.FamilyBooking:
		return s.st.bookings(ctx, userID)
	case model.FamilyService:
		return s.st.serviceRequests(ctx, userID)
	default:
		return s.st.co2Requests(ctx, userID)
	}
}

func (st *pgStore) bookings(ctx context.Context, userID string) ([]model.UnifiedRequest, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, status, contact_name, contact_email, contact_phone,
		       origin, destination, departure_date, passengers, price, currency,
		       created_at, updated_at
		FROM booking_requests
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UnifiedRequest
	for rows.Next() {
		var (
			id                          string
			status, cname, cmail, cphon sql.NullString
			origin, dest, currency      sql.NullString
			departure                   sql.NullTime
			passengers                  sql.NullInt64
			price                       sql.NullFloat64
			created, updated            sql.NullTime
		)
		if err := rows.Scan(&id, &status, &cname, &cmail, &cphon, &origin, &dest, &departure, &passengers, &price, &currency, &created, &updated); err != nil {
			return nil, err
		}
		row := map[string]any{"id": id}
		putStr(row, "status", status)
		putStr(row, "contact_name", cname)
		putStr(row, "contact_email", cmail)
		putStr(row, "contact_phone", cphon)
		putStr(row, "origin", origin)
		putStr(row, "destination", dest)
		putStr(row, "currency", currency)
		putTime(row, "departure_date", departure)
		putTime(row, "created_at", created)
		putTime(row, "updated_at", updated)
		if passengers.Valid {
			row["passengers"] = float64(passengers.Int64)
		}
		if price.Valid {
			row["price"] = price.Float64
		}
		out = append(out, normalize.Booking(row))
	}
	return out, rows.Err()
}

func (st *pgStore) serviceRequests(ctx context.Context, userID string) ([]model.UnifiedRequest, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, type, status, client_name, client_email, client_phone,
		       data, created_at, updated_at
		FROM user_requests
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UnifiedRequest
	for rows.Next() {
		var (
			id                                 string
			typ, status, cname, cmail, cphone  sql.NullString
			dataRaw                            []byte
			created, updated                   sql.NullTime
		)
		if err := rows.Scan(&id, &typ, &status, &cname, &cmail, &cphone, &dataRaw, &created, &updated); err != nil {
			return nil, err
		}
		row := map[string]any{"id": id}
		putStr(row, "type", typ)
		putStr(row, "status", status)
		putStr(row, "client_name", cname)
		putStr(row, "client_email", cmail)
		putStr(row, "client_phone", cphone)
		putTime(row, "created_at", created)
		putTime(row, "updated_at", updated)
		if len(dataRaw) > 0 {
			var data map[string]any
			if json.Unmarshal(dataRaw, &data) == nil {
				row["data"] = data
			}
		}
		out = append(out, normalize.ServiceRequest(row))
	}
	return out, rows.Err()
}

func (st *pgStore) co2Requests(ctx context.Context, userID string) ([]model.UnifiedRequest, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, service_type, status, contact_name, contact_email,
		       price, currency, created_at, updated_at
		FROM co2_certificate_requests
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UnifiedRequest
	for rows.Next() {
		var (
			id                          string
			stype, status, cname, cmail sql.NullString
			currency                    sql.NullString
			price                       sql.NullFloat64
			created, updated            sql.NullTime
		)
		if err := rows.Scan(&id, &stype, &status, &cname, &cmail, &price, &currency, &created, &updated); err != nil {
			return nil, err
		}
		row := map[string]any{"id": id}
		putStr(row, "service_type", stype)
		putStr(row, "status", status)
		putStr(row, "contact_name", cname)
		putStr(row, "contact_email", cmail)
		putStr(row, "currency", currency)
		putTime(row, "created_at", created)
		putTime(row, "updated_at", updated)
		if price.Valid {
			row["price"] = price.Float64
		}
		out = append(out, normalize.CO2Request(row))
	}
	return out, rows.Err()
}

func (st *pgStore) InsertServiceRequest(ctx context.Context, n NewServiceRequest) (model.UnifiedRequest, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	dataRaw, err := json.Marshal(n.Data)
	if err != nil {
		return model.UnifiedRequest{}, err
	}
	_, err = st.db.ExecContext(ctx, `
		INSERT INTO user_requests
			(id, user_id, type, status, client_name, client_email, client_phone, data, created_at)
		VALUES ($1, $2, $3, 'pending', $4, $5, $6, $7, $8)`,
		id, n.UserID, n.Type, n.ClientName, n.ClientEmail, n.ClientPhone, dataRaw, now)
	if err != nil {
		return model.UnifiedRequest{}, err
	}
	return model.UnifiedRequest{
		ID:           id,
		Family:       model.FamilyService,
		Type:         normalize.CanonicalType(n.Type),
		Status:       "pending",
		CreatedAt:    now,
		ContactName:  n.ClientName,
		ContactEmail: n.ClientEmail,
		ContactPhone: n.ClientPhone,
		Data:         n.Data,
	}, nil
}

func putStr(row map[string]any, key string, v sql.NullString) {
	if v.Valid {
		row[key] = v.String
	}
}

func putTime(row map[string]any, key string, v sql.NullTime) {
	if v.Valid {
		row[key] = v.Time.UTC()
	}
}

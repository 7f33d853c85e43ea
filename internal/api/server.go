package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jetdash/internal/auth"
	"jetdash/internal/category"
	"jetdash/internal/model"
	"jetdash/internal/normalize"
	"jetdash/internal/source"
	"jetdash/internal/view"
)

type Server struct {
	agg      *view.Aggregator
	inserter source.Inserter
	verifier *auth.Verifier
	pageSize int
	recent   int

	mux    *http.ServeMux
	server *http.Server
	// metrics
	loadDur       prometheus.Summary
	reqTotal      *prometheus.CounterVec
	degradedTotal *prometheus.CounterVec
}

func NewServer(addr string, readTO, writeTO, idleTO time.Duration, agg *view.Aggregator, ins source.Inserter, verifier *auth.Verifier, pageSize, recentLimit int, reg prometheus.Registerer) *Server {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	mux := http.NewServeMux()
	s := &Server{
		agg:      agg,
		inserter: ins,
		verifier: verifier,
		pageSize: pageSize,
		recent:   recentLimit,
		mux:      mux,
	}
	s.loadDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "jetdash",
		Name:      "aggregate_load_duration_seconds",
		Help:      "Time spent loading all source families for one request",
	})
	s.reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jetdash",
		Name:      "http_requests_total",
		Help:      "API requests by handler and status",
	}, []string{"handler", "status"})
	s.degradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jetdash",
		Name:      "degraded_fetch_total",
		Help:      "Source fetches that failed and degraded to an empty list",
	}, []string{"family"})
	reg.MustRegister(s.loadDur, s.reqTotal, s.degradedTotal)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/v1/requests", s.handleRequests)
	mux.HandleFunc("/api/v1/requests/recent", s.handleRecent)
	mux.HandleFunc("/api/v1/requests/detail", s.handleDetail)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  readTO,
		WriteTimeout: writeTO,
		IdleTimeout:  idleTO,
	}
	return s
}

func (s *Server) Serve() error                       { return s.server.ListenAndServe() }
func (s *Server) Shutdown(ctx context.Context) error { return s.server.Shutdown(ctx) }

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// item is a list entry: the unified record plus its resolved display
// category.
type item struct {
	model.UnifiedRequest
	Category category.Category `json:"category"`
}

type listResponse struct {
	Requests   []item   `json:"requests"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	Degraded   []string `json:"degraded_sources,omitempty"`
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listRequests(w, r)
	case http.MethodPost:
		s.createRequest(w, r)
	default:
		s.fail(w, "requests", http.StatusMethodNotAllowed, "method not allowed")
	}
}

// listRequests serves the paginated "My Requests" view: bookings and service
// requests only. CO2 requests surface via /recent.
func (s *Server) listRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := s.verifier.UserID(r)
	if err != nil {
		s.fail(w, "requests", http.StatusUnauthorized, "unauthorized")
		return
	}

	typeFilter := r.URL.Query().Get("type")
	if typeFilter == "" {
		typeFilter = view.FilterAll
	}
	query := r.URL.Query().Get("q")
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}

	snap := s.load(r.Context(), userID)
	filtered := view.Filter(snap.Requests(), typeFilter, query)
	pageItems := view.Paginate(filtered, s.pageSize, page)

	s.writeJSON(w, "requests", http.StatusOK, listResponse{
		Requests:   s.decorate(pageItems),
		Total:      len(filtered),
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: view.PageCount(len(filtered), s.pageSize),
		Degraded:   snap.Degraded,
	})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, "recent", http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, err := s.verifier.UserID(r)
	if err != nil {
		s.fail(w, "recent", http.StatusUnauthorized, "unauthorized")
		return
	}
	limit := s.recent
	if p := r.URL.Query().Get("limit"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			limit = n
		}
	}

	snap := s.load(r.Context(), userID)
	s.writeJSON(w, "recent", http.StatusOK, struct {
		Requests []item   `json:"requests"`
		Degraded []string `json:"degraded_sources,omitempty"`
	}{
		Requests: s.decorate(snap.RecentActivity(limit)),
		Degraded: snap.Degraded,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, "detail", http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, err := s.verifier.UserID(r)
	if err != nil {
		s.fail(w, "detail", http.StatusUnauthorized, "unauthorized")
		return
	}
	family := r.URL.Query().Get("family")
	id := r.URL.Query().Get("id")
	if family == "" || id == "" {
		s.fail(w, "detail", http.StatusBadRequest, "family and id are required")
		return
	}

	snap := s.load(r.Context(), userID)
	for _, rec := range snap.Family(family) {
		if rec.ID != id {
			continue
		}
		s.writeJSON(w, "detail", http.StatusOK, struct {
			Request  model.UnifiedRequest `json:"request"`
			Category category.Category    `json:"category"`
			Payload  model.Payload        `json:"payload,omitempty"`
		}{
			Request:  rec,
			Category: category.Resolve(rec.Type, rec.ServiceType),
			Payload:  detailPayload(rec),
		})
		return
	}
	s.fail(w, "detail", http.StatusNotFound, "request not found")
}

type createBody struct {
	Type        string         `json:"type"`
	ClientName  string         `json:"client_name"`
	ClientEmail string         `json:"client_email"`
	ClientPhone string         `json:"client_phone"`
	Data        map[string]any `json:"data"`
}

func (s *Server) createRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := s.verifier.UserID(r)
	if err != nil {
		s.fail(w, "create", http.StatusUnauthorized, "unauthorized")
		return
	}
	var body createBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, "create", http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(body.Type) == "" {
		s.fail(w, "create", http.StatusBadRequest, "type is required")
		return
	}

	created, err := s.inserter.InsertServiceRequest(r.Context(), source.NewServiceRequest{
		UserID:      userID,
		Type:        body.Type,
		ClientName:  body.ClientName,
		ClientEmail: body.ClientEmail,
		ClientPhone: body.ClientPhone,
		Data:        body.Data,
	})
	if err != nil {
		log.Printf("insert service request: %v", err)
		s.fail(w, "create", http.StatusBadGateway, "store insert failed")
		return
	}
	s.writeJSON(w, "create", http.StatusCreated, item{
		UnifiedRequest: created,
		Category:       category.Resolve(created.Type, created.ServiceType),
	})
}

func (s *Server) load(ctx context.Context, userID string) view.Snapshot {
	start := time.Now()
	snap := s.agg.Load(ctx, userID)
	s.loadDur.Observe(time.Since(start).Seconds())
	for _, fam := range snap.Degraded {
		s.degradedTotal.WithLabelValues(fam).Inc()
	}
	return snap
}

func (s *Server) decorate(list []model.UnifiedRequest) []item {
	out := make([]item, 0, len(list))
	for _, r := range list {
		out = append(out, item{
			UnifiedRequest: r,
			Category:       category.Resolve(r.Type, r.ServiceType),
		})
	}
	return out
}

// detailPayload decodes the data blob for service requests; other families
// have no open payload.
func detailPayload(r model.UnifiedRequest) model.Payload {
	if r.Family != model.FamilyService {
		return nil
	}
	return normalize.DecodePayload(r.Type, r.Data)
}

func (s *Server) writeJSON(w http.ResponseWriter, handler string, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("%s: write response: %v", handler, err)
	}
	s.reqTotal.WithLabelValues(handler, strconv.Itoa(status)).Inc()
}

func (s *Server) fail(w http.ResponseWriter, handler string, status int, msg string) {
	s.writeJSON(w, handler, status, map[string]string{"error": msg})
}

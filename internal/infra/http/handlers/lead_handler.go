package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartleadhq/smart-leads/internal/entity"
	"github.com/smartleadhq/smart-leads/internal/infra/database"
	"github.com/smartleadhq/smart-leads/internal/infra/http/middleware"
	"github.com/smartleadhq/smart-leads/internal/usecase"
)

type LeadHandler struct {
	enrichUC    *usecase.EnrichLeadsUseCase
	leadRepo    entity.LeadRepositoryInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(enrichUC *usecase.EnrichLeadsUseCase, leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		enrichUC:    enrichUC,
		leadRepo:    leadRepo,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// ProcessLeads handles POST /api/leads/process.
func (h *LeadHandler) ProcessLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, apiResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.EnrichLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	output, err := h.enrichUC.Execute(ctx, input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, apiResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: "Error processing leads: " + err.Error(),
		})
		return
	}

	for _, lead := range output.Leads {
		middleware.RecordLeadEnriched(lead.Status)
		if lead.MostLikelyCountry == entity.CountryError {
			middleware.RecordOracleError()
		}
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Count:   output.Count,
		Data:    output.Leads,
	})
}

// ListLeads handles GET /api/leads with an optional exact status filter.
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	leads, err := h.leadRepo.Find(r.Context(), status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: "Error fetching leads",
		})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Count:   len(leads),
		Data:    leads,
	})
}

// GetLead handles GET /api/leads/{id}.
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.leadRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, apiResponse{
				Success: false,
				Message: "Lead not found",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: "Error fetching lead",
		})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    lead,
	})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
)

// readStatsCache loads a cached aggregate; a miss or a broken payload just
// means recompute.
func (h *Handler) readStatsCache(key string, v any) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	raw, err := h.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("stats cache read failed", "key", key, "error", err)
		}
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

func (h *Handler) writeStatsCache(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, key, raw, time.Duration(h.config.Stats.CacheTTL)*time.Second).Err(); err != nil {
		slog.Error("stats cache write failed", "key", key, "error", err)
	}
}

type AvailableNowResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func (h *Handler) GetAvailableNow(w http.ResponseWriter, r *http.Request) {
	date, err := h.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "invalid date, want YYYY-MM-DD")
		return
	}

	key := statsCacheKey("available_now", date)
	var cached AvailableNowResponse
	if h.readStatsCache(key, &cached) {
		h.successResponse(w, r, "available-now count", cached)
		return
	}

	roster, err := h.repository.GetAllStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	entries, _, err := h.dayEntries(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := h.quantizer.LocalHour(time.Now())
	resp := AvailableNowResponse{
		Date:  date.Format("2006-01-02"),
		Count: schedule.AvailableNow(roster, entries, now, h.available),
	}

	h.writeStatsCache(key, resp)
	h.successResponse(w, r, "available-now count", resp)
}

type HistogramResponse struct {
	Date    string           `json:"date"`
	Buckets []map[string]int `json:"buckets"`
}

// GetHistogram returns the 52-bucket per-status counts for a filtered
// staff population. Optional department/group query parameters narrow the
// population.
func (h *Handler) GetHistogram(w http.ResponseWriter, r *http.Request) {
	date, err := h.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "invalid date, want YYYY-MM-DD")
		return
	}

	department := r.URL.Query().Get("department")
	group := r.URL.Query().Get("group")

	key := statsCacheKey("histogram", date)
	cacheable := department == "" && group == ""

	if cacheable {
		var cached HistogramResponse
		if h.readStatsCache(key, &cached) {
			h.successResponse(w, r, "histogram", cached)
			return
		}
	}

	roster, err := h.repository.GetAllStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	entries, _, err := h.dayEntries(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var filter schedule.StaffFilter
	if department != "" || group != "" {
		filter = func(s *domain.StaffMember) bool {
			dept, grp := s.EffectiveUnit(date)
			if department != "" && dept != department {
				return false
			}
			if group != "" && grp != group {
				return false
			}
			return true
		}
	}

	resp := HistogramResponse{
		Date:    date.Format("2006-01-02"),
		Buckets: schedule.Histogram(roster, entries, filter),
	}

	if cacheable {
		h.writeStatsCache(key, resp)
	}
	h.successResponse(w, r, "histogram", resp)
}

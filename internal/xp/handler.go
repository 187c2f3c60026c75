package xp

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

const defaultEventsLimit = 20

type TotalResponse struct {
	TotalXP int `json:"totalXp"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleTotal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.xp.total")
	defer span.End()

	total, err := handler.service.Total(ctx)
	if err != nil {
		log.Errorf("failed to get total xp: %s", err)
		http.Error(w, "error, failed to get total xp", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TotalResponse{TotalXP: total})
	if err != nil {
		log.Errorf("failed to marshal total xp: %s", err)
		http.Error(w, "error, failed to get total xp", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleLevel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.xp.level")
	defer span.End()

	status, err := handler.service.LevelStatus(ctx)
	if err != nil {
		log.Errorf("failed to get level status: %s", err)
		http.Error(w, "error, failed to get level status", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(status)
	if err != nil {
		log.Errorf("failed to marshal level status: %s", err)
		http.Error(w, "error, failed to get level status", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.xp.events")
	defer span.End()

	limit := defaultEventsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	events, err := handler.service.RecentEvents(ctx, limit)
	if err != nil {
		log.Errorf("failed to list xp events: %s", err)
		http.Error(w, "error, failed to list xp events", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(EventsResponse{Events: events})
	if err != nil {
		log.Errorf("failed to marshal xp events: %s", err)
		http.Error(w, "error, failed to list xp events", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

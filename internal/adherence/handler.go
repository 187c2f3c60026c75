package adherence

import (
	"encoding/json"
	"net/http"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/instrumentation"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ToggleRequest struct {
	Day   string `json:"day"`
	Taken bool   `json:"taken"`
}

type StreakResponse struct {
	Streak int `json:"streak"`
}

type Handler struct {
	tracker *Tracker
	instr   *instrumentation.Instrumentation
}

func NewHandler(tracker *Tracker, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		tracker: tracker,
		instr:   instr,
	}
}

func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adherence.toggle")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("adherence toggle, unmarshal json params: %s", err)
		http.Error(w, "adherence toggle failed", http.StatusBadRequest)
		return
	}

	day := daykey.Today()
	if req.Day != "" {
		parsedDay, err := daykey.Parse(req.Day)
		if err != nil {
			http.Error(w, "error, invalid day", http.StatusBadRequest)
			return
		}
		day = parsedDay
	}

	if err := handler.tracker.Toggle(ctx, day, req.Taken); err != nil {
		log.Errorf("failed to toggle adherence [%s]: %s", day, err)
		http.Error(w, "error, failed to toggle adherence", http.StatusInternalServerError)
		return
	}

	if handler.instr != nil {
		handler.instr.CounterAdherenceToggles.Inc()
	}

	respJson, err := json.Marshal(DayLog{Day: day, Taken: req.Taken})
	if err != nil {
		log.Errorf("failed to marshal adherence toggle: %s", err)
		http.Error(w, "error, failed to toggle adherence", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adherence.streak")
	defer span.End()

	streak, err := handler.tracker.CurrentStreak(ctx)
	if err != nil {
		log.Errorf("failed to get adherence streak: %s", err)
		http.Error(w, "error, failed to get adherence streak", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(StreakResponse{Streak: streak})
	if err != nil {
		log.Errorf("failed to marshal adherence streak: %s", err)
		http.Error(w, "error, failed to get adherence streak", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleMonthStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adherence.monthStats")
	defer span.End()

	month, err := daykey.ParseMonth(mux.Vars(r)["month"])
	if err != nil {
		http.Error(w, "error, invalid month", http.StatusBadRequest)
		return
	}

	stats, err := handler.tracker.MonthStats(ctx, month)
	if err != nil {
		log.Errorf("failed to get month stats [%s]: %s", month, err)
		http.Error(w, "error, failed to get month stats", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal month stats: %s", err)
		http.Error(w, "error, failed to get month stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

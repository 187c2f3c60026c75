package sets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/instrumentation"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type LogSetRequest struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	// Timestamp accepts epoch millis, RFC 3339 or a plain date string.
	// Older app versions sent different shapes and old exports get
	// re-imported as they were.
	Timestamp any `json:"timestamp,omitempty"`
}

type BestResponse struct {
	Exercise string   `json:"exercise"`
	Best     *float64 `json:"best"`
}

type DaySetsResponse struct {
	Day  daykey.DayKey `json:"day"`
	Sets []Set         `json:"sets"`
}

type DeleteSetResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service *Service
	instr   *instrumentation.Instrumentation
}

func NewHandler(service *Service, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

func (handler *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.logSet")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log set, unmarshal json params: %s", err)
		http.Error(w, "log set failed", http.StatusBadRequest)
		return
	}

	set := Set{
		Exercise: req.Exercise,
		Weight:   req.Weight,
		Reps:     req.Reps,
	}
	if req.Timestamp != nil {
		createdAt, err := daykey.NormalizeTimestamp(req.Timestamp)
		if err != nil {
			http.Error(w, "error, invalid timestamp", http.StatusBadRequest)
			return
		}
		set.CreatedAt = createdAt
	}

	result, err := handler.service.LogSet(ctx, set)
	if err != nil {
		if errors.Is(err, ErrInvalidSet) {
			http.Error(w, "error, invalid set", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to log set [%s]: %s", req.Exercise, err)
		http.Error(w, "error, failed to log set", http.StatusInternalServerError)
		return
	}

	if handler.instr != nil {
		handler.instr.CounterSetsLogged.Inc()
		if result.PRHappened {
			handler.instr.CounterPRsDetected.Inc()
		}
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal log set result: %s", err)
		http.Error(w, "error, failed to log set", http.StatusInternalServerError)
		return
	}

	log.Debugf("set logged: %s", resultJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusCreated)
}

func (handler *Handler) HandleDayBest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.dayBest")
	defer span.End()

	exercise := mux.Vars(r)["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	day := daykey.Today()
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		parsedDay, err := daykey.Parse(dayStr)
		if err != nil {
			http.Error(w, "error, invalid day", http.StatusBadRequest)
			return
		}
		day = parsedDay
	}

	best, err := handler.service.DayBest(ctx, exercise, day)
	if err != nil {
		log.Errorf("failed to get day best [%s] [%s]: %s", exercise, day, err)
		http.Error(w, "error, failed to get day best", http.StatusInternalServerError)
		return
	}

	handler.writeBest(w, exercise, best)
}

func (handler *Handler) HandleAllTimeBest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.allTimeBest")
	defer span.End()

	exercise := mux.Vars(r)["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	best, err := handler.service.AllTimeBest(ctx, exercise)
	if err != nil {
		log.Errorf("failed to get all time best [%s]: %s", exercise, err)
		http.Error(w, "error, failed to get all time best", http.StatusInternalServerError)
		return
	}

	handler.writeBest(w, exercise, best)
}

func (handler *Handler) HandleLastSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.lastSession")
	defer span.End()

	exercise := mux.Vars(r)["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	summary, err := handler.service.LastSessionSummary(ctx, exercise)
	if err != nil {
		log.Errorf("failed to get last session [%s]: %s", exercise, err)
		http.Error(w, "error, failed to get last session", http.StatusInternalServerError)
		return
	}
	if summary == nil {
		http.Error(w, "no previous session", http.StatusNotFound)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("failed to marshal last session: %s", err)
		http.Error(w, "error, failed to get last session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summaryJson)
}

func (handler *Handler) HandleSetsForDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.setsForDay")
	defer span.End()

	day, err := daykey.Parse(mux.Vars(r)["day"])
	if err != nil {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	daySets, err := handler.service.SetsForDay(ctx, day)
	if err != nil {
		log.Errorf("failed to get sets for day [%s]: %s", day, err)
		http.Error(w, "error, failed to get sets", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DaySetsResponse{Day: day, Sets: daySets})
	if err != nil {
		log.Errorf("failed to marshal day sets: %s", err)
		http.Error(w, "error, failed to get sets", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.delete")
	defer span.End()

	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteSet(ctx, id); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete set %d: %s", id, err)
		http.Error(w, "error, failed to delete set", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteSetResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "error, failed to delete set", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) writeBest(w http.ResponseWriter, exercise string, best *float64) {
	respJson, err := json.Marshal(BestResponse{Exercise: exercise, Best: best})
	if err != nil {
		log.Errorf("failed to marshal best response: %s", err)
		http.Error(w, "error, failed to get best", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

package bodyweight

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

type AddSampleRequest struct {
	WeightLb  float64 `json:"weightLb"`
	Timestamp any     `json:"timestamp,omitempty"`
}

type SeriesResponse struct {
	Points []DailyPoint `json:"points"`
}

type WeeklyChangeResponse struct {
	ChangeLb float64 `json:"changeLb"`
	ChangeKg float64 `json:"changeKg"`
}

type DeleteSampleResponse struct {
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

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add bodyweight, unmarshal json params: %s", err)
		http.Error(w, "add bodyweight failed", http.StatusBadRequest)
		return
	}

	sample := Sample{WeightLb: req.WeightLb}
	if req.Timestamp != nil {
		createdAt, err := daykey.NormalizeTimestamp(req.Timestamp)
		if err != nil {
			http.Error(w, "error, invalid timestamp", http.StatusBadRequest)
			return
		}
		sample.CreatedAt = createdAt
	}

	added, err := handler.service.AddSample(ctx, sample)
	if err != nil {
		if errors.Is(err, ErrInvalidSample) {
			http.Error(w, "error, invalid bodyweight sample", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add bodyweight sample: %s", err)
		http.Error(w, "error, failed to add bodyweight sample", http.StatusInternalServerError)
		return
	}

	if handler.instr != nil {
		handler.instr.CounterBodyweightSamples.Inc()
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal bodyweight sample: %s", err)
		http.Error(w, "error, failed to add bodyweight sample", http.StatusInternalServerError)
		return
	}

	log.Debugf("bodyweight sample added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteSample(ctx, id); err != nil {
		if errors.Is(err, ErrSampleNotFound) {
			http.Error(w, "bodyweight sample not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete bodyweight sample %d: %s", id, err)
		http.Error(w, "error, failed to delete bodyweight sample", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteSampleResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "error, failed to delete bodyweight sample", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.series")
	defer span.End()

	points, err := handler.service.Series(ctx)
	if err != nil {
		log.Errorf("failed to get bodyweight series: %s", err)
		http.Error(w, "error, failed to get bodyweight series", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(SeriesResponse{Points: points})
	if err != nil {
		log.Errorf("failed to marshal bodyweight series: %s", err)
		http.Error(w, "error, failed to get bodyweight series", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleWeeklyChange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.weeklyChange")
	defer span.End()

	change, err := handler.service.WeeklyChange(ctx)
	if err != nil {
		log.Errorf("failed to get weekly change: %s", err)
		http.Error(w, "error, failed to get weekly change", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(WeeklyChangeResponse{
		ChangeLb: change,
		ChangeKg: LbToKg(change),
	})
	if err != nil {
		log.Errorf("failed to marshal weekly change: %s", err)
		http.Error(w, "error, failed to get weekly change", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.trend")
	defer span.End()

	trend, err := handler.service.Trend(ctx)
	if err != nil {
		log.Errorf("failed to get bodyweight trend: %s", err)
		http.Error(w, "error, failed to get bodyweight trend", http.StatusInternalServerError)
		return
	}
	if trend == nil {
		http.Error(w, "not enough data for a trend", http.StatusNotFound)
		return
	}

	respJson, err := json.Marshal(trend)
	if err != nil {
		log.Errorf("failed to marshal bodyweight trend: %s", err)
		http.Error(w, "error, failed to get bodyweight trend", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

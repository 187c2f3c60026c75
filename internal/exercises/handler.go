package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type catalog interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) (string, error)
	Delete(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) (string, error)
}

type ListResponse struct {
	Exercises []string `json:"exercises"`
}

type AddExerciseRequest struct {
	Name string `json:"name"`
}

type AddExerciseResponse struct {
	Name string `json:"name"`
}

type DeleteExerciseResponse struct {
	DeletedName string `json:"deletedName"`
}

type RenameExerciseRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type RenameExerciseResponse struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type Handler struct {
	service catalog
}

func NewHandler(service catalog) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	names, err := handler.service.List(ctx)
	if err != nil {
		log.Errorf("failed to list exercises: %s", err)
		http.Error(w, "error, failed to list exercises", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{Exercises: names})
	if err != nil {
		log.Errorf("failed to marshal exercises list: %s", err)
		http.Error(w, "error, failed to list exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	name, err := handler.service.Add(ctx, req.Name)
	if err != nil {
		if errors.Is(err, ErrInvalidName) {
			http.Error(w, "error, invalid exercise name", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add exercise [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(AddExerciseResponse{Name: name})
	if err != nil {
		log.Errorf("failed to marshal added exercise: %s", err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise added: %s", name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	vars := mux.Vars(r)
	name := vars["name"]
	if name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, name); err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			http.Error(w, "error, invalid exercise name", http.StatusBadRequest)
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		default:
			log.Errorf("failed to delete exercise [%s]: %s", name, err)
			http.Error(w, "error, failed to delete exercise", http.StatusInternalServerError)
		}
		return
	}

	respJson, err := json.Marshal(DeleteExerciseResponse{DeletedName: name})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "error, failed to delete exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.rename")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RenameExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("rename exercise, unmarshal json params: %s", err)
		http.Error(w, "rename exercise failed", http.StatusBadRequest)
		return
	}

	newName, err := handler.service.Rename(ctx, req.Old, req.New)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			http.Error(w, "error, invalid exercise name", http.StatusBadRequest)
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		default:
			log.Errorf("failed to rename exercise [%s] to [%s]: %s", req.Old, req.New, err)
			http.Error(w, "error, failed to rename exercise", http.StatusInternalServerError)
		}
		return
	}

	respJson, err := json.Marshal(RenameExerciseResponse{Old: req.Old, New: newName})
	if err != nil {
		log.Errorf("failed to marshal rename response: %s", err)
		http.Error(w, "error, failed to rename exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise renamed: [%s] => [%s]", req.Old, newName)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

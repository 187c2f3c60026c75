package sets

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"
)

var (
	ErrSetNotFound = errors.New("set not found")
	ErrInvalidSet  = errors.New("invalid set")
)

// Set is one logged strength set. Sets are immutable once created,
// bad entries get deleted and re-logged.
type Set struct {
	ID        int           `json:"id"`
	Exercise  string        `json:"exercise"`
	Weight    float64       `json:"weight"`
	Reps      int           `json:"reps"`
	Day       daykey.DayKey `json:"day"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (s *Set) Validate() error {
	if strings.TrimSpace(s.Exercise) == "" {
		return errors.Join(ErrInvalidSet, errors.New("exercise name empty"))
	}
	if s.Weight <= 0 {
		return errors.Join(ErrInvalidSet, errors.New("weight must be positive"))
	}
	if s.Reps <= 0 {
		return errors.Join(ErrInvalidSet, errors.New("reps must be positive"))
	}
	return nil
}

// EstimatedOneRepMax applies the Epley formula and rounds to the
// nearest whole number: round(weight * (1 + reps/30)).
func EstimatedOneRepMax(weight float64, reps int) float64 {
	return math.Round(weight * (1 + float64(reps)/30))
}

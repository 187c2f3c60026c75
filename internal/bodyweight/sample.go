package bodyweight

import (
	"errors"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"
)

var (
	ErrSampleNotFound = errors.New("bodyweight sample not found")
	ErrInvalidSample  = errors.New("invalid bodyweight sample")
)

// KgPerLb converts display kilograms: kg = lb * KgPerLb. Pounds are
// the canonical stored unit, kg never gets persisted.
const KgPerLb = 0.45359237

// Sample is one bodyweight measurement. Multiple samples per day are
// fine, the analytics average them into one daily point.
type Sample struct {
	ID        int           `json:"id"`
	Day       daykey.DayKey `json:"day"`
	WeightLb  float64       `json:"weightLb"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (s *Sample) Validate() error {
	if s.WeightLb <= 0 {
		return errors.Join(ErrInvalidSample, errors.New("weight must be positive"))
	}
	return nil
}

func LbToKg(lb float64) float64 {
	return lb * KgPerLb
}

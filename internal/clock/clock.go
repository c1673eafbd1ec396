// Package clock provides the engine's time and identifier sources. Both are
// interfaces so tests can pin the calendar day and generate predictable ids.
package clock

import (
	"time"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/google/uuid"
)

// Clock supplies the current timestamp and calendar day.
type Clock interface {
	Now() time.Time
	Today() models.Date
}

// IDGenerator supplies unique task identifiers. Ids are never reused.
type IDGenerator interface {
	Next() string
}

// System returns a Clock backed by the local wall clock.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Today() models.Date {
	return models.DateOf(time.Now())
}

// UUIDs returns an IDGenerator producing random UUID strings.
func UUIDs() IDGenerator {
	return uuidGenerator{}
}

type uuidGenerator struct{}

func (uuidGenerator) Next() string {
	return uuid.NewString()
}

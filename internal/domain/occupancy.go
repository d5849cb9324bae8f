package domain

import "time"

// VacancyKind tag of the vacated-at variant
type VacancyKind int

const (
	// KindVacated the seat was released at a known moment
	KindVacated VacancyKind = iota
	// KindStillOccupied the seat has not been released yet
	KindStillOccupied
)

// Vacancy is either Vacated(at) or StillOccupied.
// It is resolved to a concrete moment only at aggregation time.
type Vacancy struct {
	kind VacancyKind
	at   time.Time
}

// Vacated returns a Vacancy released at t
func Vacated(t time.Time) Vacancy {
	return Vacancy{kind: KindVacated, at: t}
}

// StillOccupied returns a Vacancy for a seat that is still taken
func StillOccupied() Vacancy {
	return Vacancy{kind: KindStillOccupied}
}

// Kind returns the variant tag
func (v Vacancy) Kind() VacancyKind {
	return v.kind
}

// IsStillOccupied returns true for the StillOccupied variant
func (v Vacancy) IsStillOccupied() bool {
	return v.kind == KindStillOccupied
}

// At returns the release moment; ok is false for StillOccupied
func (v Vacancy) At() (t time.Time, ok bool) {
	if v.kind != KindVacated {
		return time.Time{}, false
	}
	return v.at, true
}

// Resolve returns the effective end of the span.
// For StillOccupied it is now, clipped to dayEnd.
func (v Vacancy) Resolve(now, dayEnd time.Time) time.Time {
	if v.kind == KindVacated {
		return v.at
	}
	if now.After(dayEnd) {
		return dayEnd
	}
	return now
}

// OccupancyEvent one continuous occupation of a seat
type OccupancyEvent struct {
	ID         int64
	SeatID     string
	OccupiedAt time.Time
	VacatedAt  Vacancy
}

// OccupancyEventsFilter фильтр для выборки событий за период
type OccupancyEventsFilter struct {
	From time.Time // включительно
	To   time.Time // не включительно
}

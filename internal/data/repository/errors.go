// Package repository implements all database access for the winery booking
// API using pgx directly. Sentinel errors declared here let the service and
// handler layers pick the right HTTP status without string matching.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoVacancy is returned by the reservation flow when the requested
// attendee count exceeds the remaining vacancies and oversell is disabled.
var ErrNoVacancy = errors.New("not enough vacancies")

// ErrCancelled is returned when an operation targets a cancelled occurrence
// or an occurrence of a cancelled event.
var ErrCancelled = errors.New("target is cancelled")

package entities

import (
	"time"
)

// LeadKind says which website form produced a lead
type LeadKind string

const (
	LeadKindQuote   LeadKind = "quote"
	LeadKindBooking LeadKind = "booking"
	LeadKindContact LeadKind = "contact"
)

// Valid reports whether the kind is one of the known forms
func (k LeadKind) Valid() bool {
	switch k {
	case LeadKindQuote, LeadKindBooking, LeadKindContact:
		return true
	}
	return false
}

// LeadStatus represents where a lead sits in the sales pipeline
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusScheduled LeadStatus = "scheduled"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// Valid reports whether the status is a known pipeline stage
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusScheduled, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a prospective customer captured from the website.
// QuotedPrice holds the calculator result as display text ("$251",
// "Custom quote") and Notes carries the raw selection alongside it.
type Lead struct {
	ID            string         `json:"id" db:"id"`
	Kind          LeadKind       `json:"kind" db:"kind"`
	Name          string         `json:"name" db:"name"`
	Email         string         `json:"email" db:"email"`
	Phone         string         `json:"phone" db:"phone"`
	Address       string         `json:"address" db:"address"`
	Message       string         `json:"message" db:"message"`
	Selection     QuoteSelection `json:"selection" db:"selection"`
	QuotedPrice   string         `json:"quoted_price" db:"quoted_price"`
	PreferredDate *time.Time     `json:"preferred_date,omitempty" db:"preferred_date"`
	PreferredTime string         `json:"preferred_time,omitempty" db:"preferred_time"`
	Status        LeadStatus     `json:"status" db:"status"`
	Notes         string         `json:"notes" db:"notes"`
	Source        string         `json:"source" db:"source"`
	UserAgent     string         `json:"-" db:"user_agent"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

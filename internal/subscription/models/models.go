package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionType selects the record set a submission is written to.
type SubscriptionType string

const (
	SubscriptionTypeNotification SubscriptionType = "notification"
	SubscriptionTypeResearch     SubscriptionType = "research"
)

// ParseSubscriptionType maps a caller-supplied value onto a known type.
// Only "research" selects the research set; anything else, including the
// empty string, falls back to notification.
func ParseSubscriptionType(raw string) SubscriptionType {
	if SubscriptionType(raw) == SubscriptionTypeResearch {
		return SubscriptionTypeResearch
	}
	return SubscriptionTypeNotification
}

// Source tags the UI surface that produced a submission.
type Source string

const (
	SourceLandingPage Source = "landing_page"
	SourceEmailModal  Source = "email_modal"
)

// Target identifies one of the two uniqueness-constrained record sets.
type Target string

const (
	TargetNotification Target = "email_subscriptions"
	TargetResearch     Target = "market_research_participants"
)

// Targets lists every record set, in probe order.
var Targets = []Target{TargetNotification, TargetResearch}

// Route returns the record set and source tag for a subscription type.
func (t SubscriptionType) Route() (Target, Source) {
	if t == SubscriptionTypeResearch {
		return TargetResearch, SourceEmailModal
	}
	return TargetNotification, SourceLandingPage
}

// Record is one row in either record set. Optional fields are nil when the
// value was unavailable. ID and CreatedAt are assigned by the store.
//
// Invariants:
//   - Email is unique within its Target
//   - A record is written once and never mutated or deleted
type Record struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Consent     bool      `json:"marketing_consent"`
	Source      Source    `json:"source"`
	CallerAddr  *string   `json:"ip_address,omitempty"`
	UserAgent   *string   `json:"user_agent,omitempty"`
	Country     *string   `json:"country,omitempty"`
	UTMSource   *string   `json:"utm_source,omitempty"`
	UTMMedium   *string   `json:"utm_medium,omitempty"`
	UTMCampaign *string   `json:"utm_campaign,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Attribution carries campaign tags passed through from the query string.
type Attribution struct {
	Source   string
	Medium   string
	Campaign string
}

// SubmitRequest is one intake submission plus its request metadata.
// RequestContext fields are best effort; empty strings mean unavailable.
type SubmitRequest struct {
	Email            string
	Consent          bool
	SubscriptionType SubscriptionType

	CallerAddr  string
	UserAgent   string
	Attribution Attribution
	// Headers consulted for proxy-supplied country codes.
	CountryHeaders map[string]string
}

// OptionalString returns nil for an empty string.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

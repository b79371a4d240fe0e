package models

import "github.com/google/uuid"

// Outcome is the terminal state of one submission.
//
//	received -> validated -> rejected
//	                      -> enriched -> stored -> accepted | duplicate | store_error
type Outcome string

const (
	OutcomeAccepted   Outcome = "accepted"
	OutcomeDuplicate  Outcome = "duplicate"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeStoreError Outcome = "store_error"
)

// Result is the tagged result of Submit. Exactly one outcome is set; ID is
// only meaningful for OutcomeAccepted and Err only for OutcomeStoreError.
type Result struct {
	Outcome          Outcome
	SubscriptionType SubscriptionType
	ID               uuid.UUID
	Err              error
}

func Accepted(t SubscriptionType, id uuid.UUID) Result {
	return Result{Outcome: OutcomeAccepted, SubscriptionType: t, ID: id}
}

func Duplicate(t SubscriptionType) Result {
	return Result{Outcome: OutcomeDuplicate, SubscriptionType: t}
}

func Invalid() Result {
	return Result{Outcome: OutcomeInvalid}
}

func StoreError(t SubscriptionType, err error) Result {
	return Result{Outcome: OutcomeStoreError, SubscriptionType: t, Err: err}
}

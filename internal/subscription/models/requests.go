package models

// SubscribeRequest is the JSON body accepted by the intake endpoint.
type SubscribeRequest struct {
	Email            string `json:"email"`
	MarketingConsent bool   `json:"marketingConsent"`
	SubscriptionType string `json:"subscriptionType"`
}

// SubscribeResponse is returned on an accepted submission.
type SubscribeResponse struct {
	Message          string           `json:"message"`
	Success          bool             `json:"success"`
	SubscriptionType SubscriptionType `json:"subscriptionType"`
	ID               string           `json:"id"`
}

// Error codes and messages of the intake contract.
const (
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeSubscriptionFailed = "SUBSCRIPTION_FAILED"

	MessageSubscribed       = "Successfully subscribed!"
	MessageInvalidEmail     = "Valid email address is required"
	MessageAlreadySubscribe = "This email is already subscribed."
	MessageInternal         = "Internal server error. Please try again."
)

// TableStatus reports whether one record set answered a probe.
type TableStatus struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StoreCheckResponse is the body of the store probe endpoint.
type StoreCheckResponse struct {
	Connection         string      `json:"connection"`
	EmailSubscriptions TableStatus `json:"email_subscriptions_table"`
	MarketResearch     TableStatus `json:"market_research_table"`
	Timestamp          string      `json:"timestamp"`
}

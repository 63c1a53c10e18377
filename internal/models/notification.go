package models

// Notification is the single structured message handed to the messaging
// collaborator after a saved-search run with new matches.
type Notification struct {
	RecipientID    string `json:"recipientId"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientPhone string `json:"recipientPhone,omitempty"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}

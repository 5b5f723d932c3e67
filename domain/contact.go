package domain

import "time"

type ChatbotContextEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ContactSubmission struct {
	Name             string                `json:"name"`
	Email            string                `json:"email"`
	Phone            string                `json:"phone,omitempty"`
	Company          string                `json:"company,omitempty"`
	Message          string                `json:"message,omitempty"`
	PreferredContact string                `json:"preferredContact"` // "email" or "phone"
	ChatbotContext   []ChatbotContextEntry `json:"chatbotContext,omitempty"`
}

type Lead struct {
	ID         string            `json:"leadId"`
	Submission ContactSubmission `json:"submission"`
	ReceivedAt time.Time         `json:"timestamp"`
}

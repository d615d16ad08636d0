package model

import "time"

// UTM carries optional campaign attribution captured with a submission.
type UTM struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
}

// ContactSubmission is a visitor inquiry from the contact form.
// Created once per successful post; never updated or deleted by this
// application.
type ContactSubmission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Message     string    `json:"message"`
	UTM         UTM       `json:"utm,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

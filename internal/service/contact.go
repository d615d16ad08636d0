package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"siteapi/internal/cms"
	smail "siteapi/internal/mail"
	"siteapi/internal/model"
	"siteapi/internal/repository"
)

// maxMessageLen bounds the free-text message field.
const maxMessageLen = 8000

// ContactInput is the validated contact-form payload.
type ContactInput struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Company string    `json:"company,omitempty"`
	Message string    `json:"message"`
	UTM     model.UTM `json:"utm,omitempty"`
}

// ContactResult reports which side effects actually happened, so the
// caller can render an accurate confirmation state.
type ContactResult struct {
	SubmissionID string `json:"submission_id"`
	Persisted    bool   `json:"persisted"`
	Archived     bool   `json:"archived"`
	Notified     bool   `json:"notified"`
}

// ValidationError carries field-level messages for a rejected payload.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: validation failed on %d field(s)", len(e.Fields))
}

// ContactService validates and records visitor inquiries.
type ContactService interface {
	// Submit validates the input and, on success, fans out to content-store
	// persistence, the local archive, and email notification. The three
	// side effects are isolated from one another: a failure in one is
	// logged and reported as false, and never blocks the others.
	// Unconfigured integrations are skipped the same way.
	Submit(ctx context.Context, in ContactInput) (*ContactResult, error)
}

type contactService struct {
	cms    cms.Client       // nil when the content store is not configured
	repo   repository.SubmissionRepository // nil when the database is not configured
	mailer smail.Mailer     // nil when email is not configured
	from   string
	to     string
}

// NewContactService constructs a ContactService. Any of client, repo, and
// mailer may be nil; the corresponding side effect is skipped.
func NewContactService(client cms.Client, repo repository.SubmissionRepository, mailer smail.Mailer, from, to string) ContactService {
	return &contactService{cms: client, repo: repo, mailer: mailer, from: from, to: to}
}

// Validate checks the payload and returns nil, or a ValidationError with
// one entry per offending field.
func Validate(in ContactInput) *ValidationError {
	fields := map[string][]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = append(fields["email"], "email is required")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = append(fields["email"], "email is not a valid address")
	}
	if strings.TrimSpace(in.Message) == "" {
		fields["message"] = append(fields["message"], "message is required")
	} else if len(in.Message) > maxMessageLen {
		fields["message"] = append(fields["message"], "message is too long")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*ContactResult, error) {
	if verr := Validate(in); verr != nil {
		return nil, verr
	}

	sub := &model.ContactSubmission{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Company:     strings.TrimSpace(in.Company),
		Message:     in.Message,
		UTM:         in.UTM,
		SubmittedAt: time.Now().UTC(),
	}

	res := &ContactResult{SubmissionID: sub.ID}

	if s.cms != nil {
		if _, err := s.cms.CreateSubmission(ctx, sub); err != nil {
			log.Printf("contact: content store persistence skipped: %v", err)
		} else {
			res.Persisted = true
		}
	} else {
		log.Printf("contact: content store not configured, skipping persistence")
	}

	if s.repo != nil {
		if _, err := s.repo.Create(ctx, sub); err != nil {
			log.Printf("contact: archive failed: %v", err)
		} else {
			res.Archived = true
		}
	}

	if s.mailer != nil {
		if err := s.mailer.Send(ctx, notification(sub, s.from, s.to)); err != nil {
			log.Printf("contact: notification failed: %v", err)
		} else {
			res.Notified = true
		}
	} else {
		log.Printf("contact: mail not configured, skipping notification")
	}

	return res, nil
}

// notification formats the operator email for a submission.
func notification(sub *model.ContactSubmission, from, to string) smail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	if sub.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", sub.Company)
	}
	if sub.UTM != (model.UTM{}) {
		fmt.Fprintf(&b, "Campaign: %s / %s / %s\n", sub.UTM.Source, sub.UTM.Medium, sub.UTM.Campaign)
	}
	fmt.Fprintf(&b, "\n%s\n", sub.Message)

	return smail.Message{
		From:    from,
		To:      []string{to},
		ReplyTo: sub.Email,
		Subject: "New inquiry from " + sub.Name,
		Text:    b.String(),
	}
}

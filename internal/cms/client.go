package cms

// Package cms contains the client for the hosted headless CMS. Queries are
// GROQ over HTTPS; results are decoded into the typed variants in
// internal/model at this boundary, so shape mismatches fail here with a
// DecodeError instead of propagating loose maps into rendering.

import (
	"context"
	"errors"
	"fmt"
	"io"

	"siteapi/internal/model"
)

var (
	// ErrNotFound is returned when a query matches no document.
	ErrNotFound = errors.New("cms: document not found")
	// ErrNotConfigured is returned by New when no project ID is set.
	ErrNotConfigured = errors.New("cms: project id is required")
	// ErrNoWriteToken is returned by CreateSubmission when mutations are not configured.
	ErrNoWriteToken = errors.New("cms: write token not configured")
)

// DecodeError reports a response that did not match the expected document shape.
type DecodeError struct {
	DocType string
	Reason  string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cms: decode %s: %s: %v", e.DocType, e.Reason, e.Err)
	}
	return fmt.Sprintf("cms: decode %s: %s", e.DocType, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client is the read/write surface of the content store.
// Read methods return ErrNotFound for empty single-document results; list
// methods return empty slices. The draft flag switches to the drafts
// perspective and bypasses the CDN host.
type Client interface {
	// ServicePageBySlug returns the service page with the given slug.
	ServicePageBySlug(ctx context.Context, slug string, draft bool) (*model.ServicePage, error)

	// ServicePages returns all published service pages.
	ServicePages(ctx context.Context) ([]model.ServicePage, error)

	// ServicePagesByCategory returns service pages sharing a category slug.
	ServicePagesByCategory(ctx context.Context, category string) ([]model.ServicePage, error)

	// CaseStudyBySlug returns the case study with the given slug.
	CaseStudyBySlug(ctx context.Context, slug string, draft bool) (*model.CaseStudy, error)

	// CaseStudies returns all published case studies.
	CaseStudies(ctx context.Context) ([]model.CaseStudy, error)

	// CaseStudiesByCategory returns case studies sharing a category slug.
	CaseStudiesByCategory(ctx context.Context, category string) ([]model.CaseStudy, error)

	// AboutPage returns the single about-us document.
	AboutPage(ctx context.Context, draft bool) (*model.AboutPage, error)

	// Categories returns all categories.
	Categories(ctx context.Context) ([]model.Category, error)

	// CreateSubmission creates a contactSubmission document and returns its ID.
	// Requires a configured write token.
	CreateSubmission(ctx context.Context, sub *model.ContactSubmission) (string, error)

	// FetchAsset streams an image asset by its CMS reference
	// (e.g. "image-<hash>-800x600-jpg") from the asset CDN.
	FetchAsset(ctx context.Context, ref string) (io.ReadCloser, string, error)
}

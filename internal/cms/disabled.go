package cms

import (
	"context"
	"io"

	"siteapi/internal/model"
)

// Disabled returns a Client for deployments with no CMS configured:
// lookups miss, listings are empty, and writes fail with ErrNotConfigured.
// The resolver then serves the static catalog alone.
func Disabled() Client {
	return disabledClient{}
}

type disabledClient struct{}

func (disabledClient) ServicePageBySlug(context.Context, string, bool) (*model.ServicePage, error) {
	return nil, ErrNotFound
}

func (disabledClient) ServicePages(context.Context) ([]model.ServicePage, error) {
	return nil, nil
}

func (disabledClient) ServicePagesByCategory(context.Context, string) ([]model.ServicePage, error) {
	return nil, nil
}

func (disabledClient) CaseStudyBySlug(context.Context, string, bool) (*model.CaseStudy, error) {
	return nil, ErrNotFound
}

func (disabledClient) CaseStudies(context.Context) ([]model.CaseStudy, error) {
	return nil, nil
}

func (disabledClient) CaseStudiesByCategory(context.Context, string) ([]model.CaseStudy, error) {
	return nil, nil
}

func (disabledClient) AboutPage(context.Context, bool) (*model.AboutPage, error) {
	return nil, ErrNotFound
}

func (disabledClient) Categories(context.Context) ([]model.Category, error) {
	return nil, nil
}

func (disabledClient) CreateSubmission(context.Context, *model.ContactSubmission) (string, error) {
	return "", ErrNotConfigured
}

func (disabledClient) FetchAsset(context.Context, string) (io.ReadCloser, string, error) {
	return nil, "", ErrNotFound
}

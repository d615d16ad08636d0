package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"siteapi/internal/config"
	"siteapi/internal/model"
)

// GROQ projections normalize the stored document shape (nested slug
// objects, references) into the flat field names the model types carry.
const (
	serviceFields = `{"id": _id, "slug": slug.current, title, summary, "category": category->slug.current, body, "hero_image": heroImage.asset._ref, seo, "updated_at": _updatedAt}`
	caseFields    = `{"id": _id, "slug": slug.current, title, client, summary, "category": category->slug.current, body, "hero_image": heroImage.asset._ref, results, seo, "updated_at": _updatedAt}`
	aboutFields   = `{"id": _id, title, mission, body, "team": team[]{name, role, "photo": photo.asset._ref}, "updated_at": _updatedAt}`
	categoryField = `{"id": _id, "slug": slug.current, title}`

	qServiceBySlug     = `*[_type == "servicePage" && slug.current == $slug][0]` + serviceFields
	qServices          = `*[_type == "servicePage"] | order(title asc)` + serviceFields
	qServicesByCat     = `*[_type == "servicePage" && category->slug.current == $category]` + serviceFields
	qCaseStudyBySlug   = `*[_type == "caseStudy" && slug.current == $slug][0]` + caseFields
	qCaseStudies       = `*[_type == "caseStudy"] | order(title asc)` + caseFields
	qCaseStudiesByCat  = `*[_type == "caseStudy" && category->slug.current == $category]` + caseFields
	qAboutPage         = `*[_type == "aboutUsPage"][0]` + aboutFields
	qCategories        = `*[_type == "category"] | order(title asc)` + categoryField
)

// httpClient speaks the CMS query and mutation APIs over HTTPS.
// Safe for concurrent use.
type httpClient struct {
	cfg       config.CMSConfig
	http      *http.Client
	queryBase string // https://{project}.api.{host}/v{version}, no trailing slash
	cdnBase   string
	assetBase string // https://cdn.{host}/images/{project}/{dataset}
}

// New constructs a Client from configuration. The HTTP transport is
// wrapped with otelhttp so outbound CMS calls appear in traces.
func New(cfg config.CMSConfig) (Client, error) {
	if cfg.ProjectID == "" {
		return nil, ErrNotConfigured
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
		queryBase: fmt.Sprintf("https://%s.api.%s/v%s", cfg.ProjectID, cfg.APIHost, cfg.APIVersion),
		cdnBase:   fmt.Sprintf("https://%s.apicdn.%s/v%s", cfg.ProjectID, cfg.APIHost, cfg.APIVersion),
		assetBase: fmt.Sprintf("https://cdn.%s/images/%s/%s", cfg.APIHost, cfg.ProjectID, cfg.Dataset),
	}, nil
}

// queryEnvelope is the wire response of the query endpoint.
type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
}

type apiError struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

// query issues a GROQ query and returns the raw result payload.
// params values are JSON-encoded per the query API contract.
func (c *httpClient) query(ctx context.Context, groq string, params map[string]string, draft bool) (json.RawMessage, error) {
	base := c.queryBase
	if c.cfg.UseCDN && !draft {
		base = c.cdnBase
	}

	v := url.Values{}
	v.Set("query", groq)
	for k, p := range params {
		b, _ := json.Marshal(p)
		v.Set("$"+k, string(b))
	}
	if draft {
		v.Set("perspective", "previewDrafts")
	}

	u := fmt.Sprintf("%s/data/query/%s?%s", base, c.cfg.Dataset, v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.ReadToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ReadToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Error.Description != "" {
			return nil, fmt.Errorf("cms: query failed (%d): %s", resp.StatusCode, ae.Error.Description)
		}
		return nil, fmt.Errorf("cms: query failed (%d)", resp.StatusCode)
	}

	var env queryEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{DocType: "envelope", Reason: "invalid response body", Err: err}
	}
	return env.Result, nil
}

func isNullResult(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// decodeOne decodes a single-document result, mapping null to ErrNotFound
// and validating the fields every document must carry.
func decodeOne[T any](raw json.RawMessage, docType string, validate func(*T) string) (*T, error) {
	if isNullResult(raw) {
		return nil, ErrNotFound
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{DocType: docType, Reason: "shape mismatch", Err: err}
	}
	if validate != nil {
		if reason := validate(&out); reason != "" {
			return nil, &DecodeError{DocType: docType, Reason: reason}
		}
	}
	return &out, nil
}

// decodeList decodes a list result, mapping null to an empty slice.
func decodeList[T any](raw json.RawMessage, docType string) ([]T, error) {
	if isNullResult(raw) {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{DocType: docType, Reason: "shape mismatch", Err: err}
	}
	return out, nil
}

func validateService(s *model.ServicePage) string {
	if s.Slug == "" || s.Title == "" {
		return "missing slug or title"
	}
	return ""
}

func validateCaseStudy(cs *model.CaseStudy) string {
	if cs.Slug == "" || cs.Title == "" {
		return "missing slug or title"
	}
	return ""
}

func (c *httpClient) ServicePageBySlug(ctx context.Context, slug string, draft bool) (*model.ServicePage, error) {
	raw, err := c.query(ctx, qServiceBySlug, map[string]string{"slug": slug}, draft)
	if err != nil {
		return nil, err
	}
	return decodeOne[model.ServicePage](raw, model.TypeServicePage, validateService)
}

func (c *httpClient) ServicePages(ctx context.Context) ([]model.ServicePage, error) {
	raw, err := c.query(ctx, qServices, nil, false)
	if err != nil {
		return nil, err
	}
	return decodeList[model.ServicePage](raw, model.TypeServicePage)
}

func (c *httpClient) ServicePagesByCategory(ctx context.Context, category string) ([]model.ServicePage, error) {
	raw, err := c.query(ctx, qServicesByCat, map[string]string{"category": category}, false)
	if err != nil {
		return nil, err
	}
	return decodeList[model.ServicePage](raw, model.TypeServicePage)
}

func (c *httpClient) CaseStudyBySlug(ctx context.Context, slug string, draft bool) (*model.CaseStudy, error) {
	raw, err := c.query(ctx, qCaseStudyBySlug, map[string]string{"slug": slug}, draft)
	if err != nil {
		return nil, err
	}
	return decodeOne[model.CaseStudy](raw, model.TypeCaseStudy, validateCaseStudy)
}

func (c *httpClient) CaseStudies(ctx context.Context) ([]model.CaseStudy, error) {
	raw, err := c.query(ctx, qCaseStudies, nil, false)
	if err != nil {
		return nil, err
	}
	return decodeList[model.CaseStudy](raw, model.TypeCaseStudy)
}

func (c *httpClient) CaseStudiesByCategory(ctx context.Context, category string) ([]model.CaseStudy, error) {
	raw, err := c.query(ctx, qCaseStudiesByCat, map[string]string{"category": category}, false)
	if err != nil {
		return nil, err
	}
	return decodeList[model.CaseStudy](raw, model.TypeCaseStudy)
}

func (c *httpClient) AboutPage(ctx context.Context, draft bool) (*model.AboutPage, error) {
	raw, err := c.query(ctx, qAboutPage, nil, draft)
	if err != nil {
		return nil, err
	}
	return decodeOne[model.AboutPage](raw, model.TypeAboutPage, nil)
}

func (c *httpClient) Categories(ctx context.Context) ([]model.Category, error) {
	raw, err := c.query(ctx, qCategories, nil, false)
	if err != nil {
		return nil, err
	}
	return decodeList[model.Category](raw, model.TypeCategory)
}

// mutationRequest is the wire format of the mutation endpoint.
type mutationRequest struct {
	Mutations []map[string]any `json:"mutations"`
}

type mutationResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID string `json:"id"`
	} `json:"results"`
}

func (c *httpClient) CreateSubmission(ctx context.Context, sub *model.ContactSubmission) (string, error) {
	if c.cfg.WriteToken == "" {
		return "", ErrNoWriteToken
	}

	doc := map[string]any{
		"_type":       model.TypeSubmission,
		"name":        sub.Name,
		"email":       sub.Email,
		"message":     sub.Message,
		"submittedAt": sub.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if sub.Company != "" {
		doc["company"] = sub.Company
	}
	if sub.UTM != (model.UTM{}) {
		doc["utm"] = map[string]string{
			"source":   sub.UTM.Source,
			"medium":   sub.UTM.Medium,
			"campaign": sub.UTM.Campaign,
		}
	}

	payload, err := json.Marshal(mutationRequest{Mutations: []map[string]any{{"create": doc}}})
	if err != nil {
		return "", err
	}

	// Mutations always go to the live API host, never the CDN.
	u := fmt.Sprintf("%s/data/mutate/%s?returnIds=true", c.queryBase, c.cfg.Dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.WriteToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("cms: mutate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cms: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cms: mutate failed (%d)", resp.StatusCode)
	}

	var mr mutationResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return "", &DecodeError{DocType: model.TypeSubmission, Reason: "invalid mutation response", Err: err}
	}
	if len(mr.Results) == 0 {
		return "", &DecodeError{DocType: model.TypeSubmission, Reason: "mutation returned no ids"}
	}
	return mr.Results[0].ID, nil
}

// FetchAsset streams an image asset from the CMS asset CDN.
// Refs look like "image-<hash>-<dims>-<ext>"; the CDN filename is
// "<hash>-<dims>.<ext>".
func (c *httpClient) FetchAsset(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	filename, err := assetFilename(ref)
	if err != nil {
		return nil, "", err
	}

	u := c.assetBase + "/" + filename
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("cms: fetch asset: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("cms: fetch asset failed (%d)", resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// assetFilename converts an image asset reference into its CDN filename.
func assetFilename(ref string) (string, error) {
	rest, ok := strings.CutPrefix(ref, "image-")
	if !ok {
		return "", fmt.Errorf("cms: invalid asset ref %q", ref)
	}
	i := strings.LastIndex(rest, "-")
	if i <= 0 || i == len(rest)-1 {
		return "", fmt.Errorf("cms: invalid asset ref %q", ref)
	}
	return rest[:i] + "." + rest[i+1:], nil
}

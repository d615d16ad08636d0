package model

import "time"

// Content type discriminators as stored in the CMS `_type` field.
const (
	TypeServicePage = "servicePage"
	TypeCaseStudy   = "caseStudy"
	TypeAboutPage   = "aboutUsPage"
	TypeCategory    = "category"
	TypeSubmission  = "contactSubmission"
)

// Sources a resolved page can come from.
const (
	SourceCatalog = "catalog"
	SourceCMS     = "cms"
)

// SEO carries the optional metadata fields editors maintain per page.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ServicePage is a consulting service offering page.
// These are pure domain models with no database-specific dependencies or
// tags; they are shared across the catalog, CMS client, and HTTP layers.
type ServicePage struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Category  string    `json:"category"`
	Body      string    `json:"body"`
	HeroImage string    `json:"hero_image,omitempty"`
	SEO       SEO       `json:"seo,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// CaseStudy is a client engagement write-up.
type CaseStudy struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Client    string    `json:"client"`
	Summary   string    `json:"summary"`
	Category  string    `json:"category"`
	Body      string    `json:"body"`
	HeroImage string    `json:"hero_image,omitempty"`
	Results   []string  `json:"results,omitempty"`
	SEO       SEO       `json:"seo,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TeamMember is an entry on the about-us page.
type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Photo string `json:"photo,omitempty"`
}

// AboutPage is the company about-us page. There is at most one.
type AboutPage struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Mission   string       `json:"mission"`
	Body      string       `json:"body"`
	Team      []TeamMember `json:"team,omitempty"`
	UpdatedAt time.Time    `json:"updated_at,omitempty"`
}

// Category groups services and case studies.
type Category struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

package catalog

// Package catalog holds the static fallback content: fully specified,
// version-controlled service pages served when the CMS has no matching
// document or is unreachable. Entries change only by redeploying.

import "siteapi/internal/model"

var services = []model.ServicePage{
	{
		ID:       "static-cloud-transformation",
		Slug:     "cloud-transformation",
		Title:    "Cloud Transformation",
		Summary:  "Migrate legacy estates to cloud-native platforms without betting the business on a big-bang cutover.",
		Category: "cloud",
		Body: "We plan and execute phased cloud migrations: workload assessment, " +
			"landing-zone design, incremental cutover, and cost governance once " +
			"you are there. Engagements typically run eight to sixteen weeks and " +
			"leave your team operating the platform, not us.",
		SEO: model.SEO{
			Title:       "Cloud Transformation Consulting",
			Description: "Phased cloud migration planning and execution for established engineering organizations.",
		},
	},
	{
		ID:       "static-data-engineering",
		Slug:     "data-engineering",
		Title:    "Data Engineering",
		Summary:  "Reliable pipelines and warehouses that analysts actually trust.",
		Category: "data",
		Body: "From ingestion to modeling to serving: we build batch and streaming " +
			"pipelines with testing and lineage baked in, and we stay until your " +
			"first on-call rotation has survived a quarter.",
		SEO: model.SEO{
			Title:       "Data Engineering Consulting",
			Description: "Production-grade data pipelines, warehousing, and analytics infrastructure.",
		},
	},
	{
		ID:       "static-product-strategy",
		Slug:     "product-strategy",
		Title:    "Product Strategy",
		Summary:  "Technical due diligence and roadmap shaping for product leaders.",
		Category: "strategy",
		Body: "We pair senior engineers with your product organization to pressure-test " +
			"roadmaps, size technical bets, and turn architecture constraints into " +
			"sequencing decisions rather than surprises.",
		SEO: model.SEO{
			Title:       "Product & Technology Strategy",
			Description: "Roadmap shaping, technical due diligence, and build-vs-buy analysis.",
		},
	},
	{
		ID:       "static-platform-reliability",
		Slug:     "platform-reliability",
		Title:    "Platform Reliability",
		Summary:  "SLOs, incident response, and the engineering habits that keep pages quiet.",
		Category: "cloud",
		Body: "We establish service-level objectives, wire up the observability to " +
			"measure them, and coach teams through their first error-budget " +
			"conversations. Reliability becomes a product feature, not a fire drill.",
		SEO: model.SEO{
			Title:       "Platform Reliability Engineering",
			Description: "SLO definition, observability, and incident-response practice for platform teams.",
		},
	},
}

// ServiceBySlug returns the static entry for slug, or nil when absent.
func ServiceBySlug(slug string) *model.ServicePage {
	for i := range services {
		if services[i].Slug == slug {
			return &services[i]
		}
	}
	return nil
}

// Services returns a copy of all static service entries.
func Services() []model.ServicePage {
	out := make([]model.ServicePage, len(services))
	copy(out, services)
	return out
}

// ServicesByCategory returns static entries sharing the given category.
func ServicesByCategory(category string) []model.ServicePage {
	var out []model.ServicePage
	for _, s := range services {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Package detector classifies a page by its URL: what kind of site it is on
// and what the page is likely about.
package detector

import (
	"net/url"
	"strings"
)

// Site is the URL-derived classification of a page.
type Site struct {
	DomainType string `json:"domain_type"` // gov, edu, academic, mobile, commercial
	Country    string `json:"country"`     // ISO code from the TLD, or "unknown"
	Category   string `json:"category"`    // gov/health, academic/general, docs/api, blog, news/tech, shop, general
}

// Classify inspects rawURL. An unparsable URL classifies as commercial/general.
func Classify(rawURL string) Site {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Site{DomainType: "commercial", Country: "unknown", Category: "general"}
	}
	domainType := detectDomainType(u)
	return Site{
		DomainType: domainType,
		Country:    detectCountry(u),
		Category:   detectCategory(u, domainType),
	}
}

var academicDomains = []string{
	"arxiv.org", "doi.org", "pubmed.ncbi.nlm.nih.gov",
	"scholar.google.com", "researchgate.net", "academia.edu",
	"biorxiv.org", "medrxiv.org", "ssrn.com",
}

func detectDomainType(u *url.URL) string {
	host := strings.ToLower(u.Hostname())

	switch {
	case strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil"):
		return "gov"
	case strings.HasSuffix(host, ".edu"):
		return "edu"
	}
	for _, domain := range academicDomains {
		if strings.Contains(host, domain) {
			return "academic"
		}
	}
	if strings.HasPrefix(host, "m.") || strings.HasPrefix(host, "mobile.") {
		return "mobile"
	}
	return "commercial"
}

var countryTLDs = map[string]bool{
	"uk": true, "de": true, "fr": true, "jp": true, "cn": true,
	"au": true, "ca": true, "in": true, "br": true, "ru": true,
	"it": true, "es": true, "nl": true, "se": true, "ch": true,
}

func detectCountry(u *url.URL) string {
	parts := strings.Split(strings.ToLower(u.Hostname()), ".")
	if len(parts) < 2 {
		return "unknown"
	}

	tld := parts[len(parts)-1]
	if countryTLDs[tld] {
		return tld
	}
	// US implied for .gov, .edu and .mil
	if tld == "gov" || tld == "edu" || tld == "mil" {
		return "us"
	}
	return "unknown"
}

func detectCategory(u *url.URL, domainType string) string {
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	switch domainType {
	case "gov":
		for _, s := range []string{"health", "cdc", "nih", "fda"} {
			if strings.Contains(host, s) {
				return "gov/health"
			}
		}
		return "gov/general"
	case "academic", "edu":
		return "academic/general"
	}

	switch {
	case strings.HasPrefix(host, "docs.") || strings.Contains(path, "/docs/") ||
		strings.HasPrefix(host, "api.") || strings.Contains(path, "/api/"):
		return "docs/api"
	case strings.HasPrefix(host, "blog.") || strings.Contains(path, "/blog/"):
		return "blog"
	case strings.HasPrefix(host, "shop.") || strings.HasPrefix(host, "store.") ||
		strings.Contains(path, "/pricing") || strings.Contains(path, "/products/"):
		return "shop"
	}

	for _, news := range []string{"techcrunch", "wired", "arstechnica", "theverge", "hacker", "news"} {
		if strings.Contains(host, news) {
			return "news/tech"
		}
	}
	return "general"
}

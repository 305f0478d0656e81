package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// UtilityService provides text normalization, slug generation, and tolerant
// numeric extraction for admin-entered values.
type UtilityService struct{}

func NewUtilityService() *UtilityService {
	return &UtilityService{}
}

var (
	nonSlugChars     = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	hyphenRuns       = regexp.MustCompile(`-+`)
	firstNumberRegex = regexp.MustCompile(`[-+]?\d+(\.\d+)?`)
)

// NormalizeName normalizes a company name for matching: lowercase, legal
// suffixes stripped, punctuation removed, whitespace collapsed.
func (s *UtilityService) NormalizeName(name string) string {
	normalized := strings.ToLower(name)

	suffixes := []string{" ltd.", " ltd", " limited", " pvt.", " pvt", " private", " ipo"}
	for _, suffix := range suffixes {
		normalized = strings.TrimSuffix(normalized, suffix)
	}

	normalized = nonSlugChars.ReplaceAllString(normalized, "")
	normalized = whitespaceRuns.ReplaceAllString(normalized, " ")

	return strings.TrimSpace(normalized)
}

// GenerateSlug creates a URL-safe identifier from a company name.
// Slugs are generated once on create and never regenerated on update,
// since they are used for external linking.
func (s *UtilityService) GenerateSlug(name string) string {
	if name == "" {
		return ""
	}

	slug := strings.ReplaceAll(s.NormalizeName(name), " ", "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ExtractNumeric pulls the first numeric value out of free text such as
// "12.4x" or "₹ 85". Returns 0 when no number is present.
func (s *UtilityService) ExtractNumeric(text string) float64 {
	match := firstNumberRegex.FindString(strings.TrimSpace(text))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

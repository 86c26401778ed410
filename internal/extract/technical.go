package extract

import (
	"regexp"
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

// List caps avoid runaway matches in documents that repeat a standards
// body's name hundreds of times.
const (
	maxStandards = 20
	maxBrands    = 30
)

var (
	standardPattern = regexp.MustCompile(`(?:SASO|GSO|ISO|IEC|ASTM|DIN|BS|EN|NFPA)[\s\-]?\d+(?:[\-:]\d+)*`)

	brandsHeading = regexp.MustCompile(
		`(?:الماركات|العلامات\s+التجارية|الموردون|المصنعون)\s+المعتمد(?:ة|ون)\s*:?`,
	)
	brandLine = regexp.MustCompile(`(?m)^\s*[-•*]\s*([^\n]{2,60})$`)
)

// ExtractTechnicalSpecs recovers referenced standards and any approved-brand
// list from the technical specifications section. Bill-of-quantities parsing
// is a separate pass; this extractor covers the narrative requirements only.
func ExtractTechnicalSpecs(section string) TechnicalSpecs {
	section = artext.FoldDigits(section)

	var out TechnicalSpecs
	confidence := 0

	if len(strings.TrimSpace(section)) > 0 {
		confidence += 20
	}

	out.Standards = dedupeCapped(standardPattern.FindAllString(section, -1), maxStandards)
	if len(out.Standards) > 0 {
		confidence += 35
	}

	out.Brands = findBrands(section)
	if len(out.Brands) > 0 {
		confidence += 25
	}

	out.Confidence = capConfidence(confidence, 90)
	return out
}

// findBrands captures bulleted lines in a bounded window after an
// approved-brands heading.
func findBrands(section string) []string {
	loc := brandsHeading.FindStringIndex(section)
	if loc == nil {
		return nil
	}

	window := section[loc[1]:]
	if len(window) > 1500 {
		window = window[:1500]
	}

	var brands []string
	for _, m := range brandLine.FindAllStringSubmatch(window, -1) {
		brands = append(brands, artext.CollapseWhitespace(m[1]))
	}
	return dedupeCapped(brands, maxBrands)
}

func dedupeCapped(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

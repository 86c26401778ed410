package extract

import (
	"regexp"
	"strconv"

	"github.com/tanafus/engine/pkg/artext"
)

const maxCertificates = 20

var (
	classificationPattern = regexp.MustCompile(
		`تصنيف\s+(?:المقاولين|المقاول|الشركات)[^\n]{0,60}?(?:درجة|فئة|مجال)\s*:?\s*([^\n،.]{1,40})`,
	)
	certificatePattern = regexp.MustCompile(`شهاد[هة]\s+([^\n،.;؛]{2,60})`)
	experiencePattern  = regexp.MustCompile(
		`خبرة\s*(?:لا\s+تقل\s+عن|بحد\s+[أا]دنى)?\s*\(?(\d{1,2})\)?\s*سن(?:وات|[هة])`,
	)
	similarProjectsPattern = regexp.MustCompile(
		`\(?(\d{1,2})\)?\s*مشاريع\s+مماثل[هة]`,
	)
)

// ExtractQualifications recovers bidder qualification requirements:
// contractor classification, required certificates, minimum experience, and
// similar-projects count.
func ExtractQualifications(section string) Qualifications {
	section = artext.FoldDigits(section)

	var out Qualifications
	confidence := 0

	if m := classificationPattern.FindStringSubmatch(section); m != nil {
		out.Classification = NewField(artext.CollapseWhitespace(m[1]), SourceRegex, snippet(m[0]), 80)
		confidence += 30
	}

	var certs []string
	for _, m := range certificatePattern.FindAllStringSubmatch(section, -1) {
		certs = append(certs, artext.CollapseWhitespace(m[1]))
	}
	out.Certificates = dedupeCapped(certs, maxCertificates)
	if len(out.Certificates) > 0 {
		confidence += 20
	}

	if m := experiencePattern.FindStringSubmatch(section); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years > 0 {
			out.MinExperienceYears = NewField(years, SourceRegex, snippet(m[0]), 75)
			confidence += 25
		}
	}

	if m := similarProjectsPattern.FindStringSubmatch(section); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			out.SimilarProjects = NewField(n, SourceRegex, snippet(m[0]), 70)
			confidence += 15
		}
	}

	out.Confidence = capConfidence(confidence, 90)
	return out
}

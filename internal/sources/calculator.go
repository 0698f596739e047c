package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// Trust label policy: how many institutional-grade sources each label
// needs. An institutional-grade source is a validated YouTube video, a
// named university, or an approved-platform online course. Adjust here,
// not in CalculateTrustLevel.
const (
	// TrustedMinInstitutional is the institutional source count that earns
	// the trusted label.
	TrustedMinInstitutional = 1
	// VerifiedMinInstitutional is the count of independent institutional
	// sources that earns the verified label.
	VerifiedMinInstitutional = 2
)

// approvedPlatforms is the fixed allow-list of online course platforms.
// Choosing "Other" requires a course name or URL.
var approvedPlatforms = []string{
	"NPTEL",
	"Coursera",
	"MIT OpenCourseWare",
	"edX",
	"Khan Academy",
	"Udacity",
	"Udemy",
	"LinkedIn Learning",
	"Other",
}

// ValidationOutcome is the result of a source requirement check. Invalid
// metadata is reported here, never raised as an error.
type ValidationOutcome struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Calculator validates a content item's declared citations and derives its
// trust label. It is pure except for the injected link validator.
type Calculator struct {
	links LinkValidator
}

func NewCalculator(links LinkValidator) *Calculator {
	return &Calculator{links: links}
}

// ApprovedPlatforms returns the online course platform allow-list.
func (c *Calculator) ApprovedPlatforms() []string {
	out := make([]string, len(approvedPlatforms))
	copy(out, approvedPlatforms)
	return out
}

// ValidateSourceRequirement checks that the metadata declares at least one
// source and that every declared tag carries a usable record.
func (c *Calculator) ValidateSourceRequirement(meta *models.ContentSourceMetadata) ValidationOutcome {
	if meta == nil || len(meta.SourceTags) == 0 {
		return ValidationOutcome{
			Valid:   false,
			Message: "Please add at least one valid academic source (YouTube, University, or Online Course)",
		}
	}

	if meta.HasTag(models.SourceYouTube) {
		if meta.YouTubeSource == nil || !meta.YouTubeSource.Validated {
			return ValidationOutcome{
				Valid:   false,
				Message: "Please provide a valid YouTube educational video link",
			}
		}
	}

	if meta.HasTag(models.SourceUniversity) {
		if meta.UniversitySource == nil || strings.TrimSpace(meta.UniversitySource.Name) == "" {
			return ValidationOutcome{
				Valid:   false,
				Message: "Please provide a valid university or institution name",
			}
		}
	}

	if meta.HasTag(models.SourceOnlineCourse) {
		if meta.OnlineCourseSource == nil || strings.TrimSpace(meta.OnlineCourseSource.Platform) == "" {
			return ValidationOutcome{
				Valid:   false,
				Message: "Please select a valid online course platform",
			}
		}
	}

	return ValidationOutcome{Valid: true}
}

// ValidateYouTubeLink delegates to the injected link validator. A failing
// or unavailable validator counts as not validated (fail closed).
func (c *Calculator) ValidateYouTubeLink(ctx context.Context, url string) LinkCheck {
	check, err := c.links.ValidateFormat(ctx, url)
	if err != nil {
		return LinkCheck{Valid: false, Error: "Failed to validate YouTube link"}
	}
	return check
}

// ValidateUniversityTag checks the institution name bounds.
func (c *Calculator) ValidateUniversityTag(name string) ValidationOutcome {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ValidationOutcome{Valid: false, Message: "University name cannot be empty"}
	}
	if len(trimmed) < 3 {
		return ValidationOutcome{Valid: false, Message: "University name must be at least 3 characters"}
	}
	if len(trimmed) > 100 {
		return ValidationOutcome{Valid: false, Message: "University name must be less than 100 characters"}
	}
	return ValidationOutcome{Valid: true}
}

// ValidateOnlineCourse checks the platform against the allow-list.
func (c *Calculator) ValidateOnlineCourse(platform, courseName, url string) ValidationOutcome {
	if strings.TrimSpace(platform) == "" {
		return ValidationOutcome{Valid: false, Message: "Platform cannot be empty"}
	}

	approved := false
	for _, p := range approvedPlatforms {
		if p == platform {
			approved = true
			break
		}
	}
	if !approved {
		return ValidationOutcome{
			Valid:   false,
			Message: fmt.Sprintf("Platform must be one of: %s", strings.Join(approvedPlatforms, ", ")),
		}
	}

	if platform == "Other" && strings.TrimSpace(courseName) == "" && strings.TrimSpace(url) == "" {
		return ValidationOutcome{Valid: false, Message: `Course name or URL is required for "Other" platforms`}
	}

	return ValidationOutcome{Valid: true}
}

// CalculateTrustLevel derives the content trust label from the declared
// tags. Self-written and book/other citations never escalate the label by
// themselves; they force admin review instead.
func (c *Calculator) CalculateTrustLevel(meta *models.ContentSourceMetadata) models.ContentTrustLevel {
	if meta == nil {
		return models.ContentTrustBasic
	}

	institutional := c.institutionalTagCount(meta)

	if institutional >= VerifiedMinInstitutional {
		return models.ContentTrustVerified
	}

	if institutional >= TrustedMinInstitutional {
		return models.ContentTrustTrusted
	}

	// Self-written or book/other citations alone never escalate the label.
	return models.ContentTrustBasic
}

// Derive fills in the derived fields of the metadata in place and returns
// it.
func (c *Calculator) Derive(meta *models.ContentSourceMetadata) *models.ContentSourceMetadata {
	if meta == nil {
		return nil
	}
	meta.TrustLevel = c.CalculateTrustLevel(meta)
	meta.MultipleSourceBonus = len(meta.SourceTags) > 1
	meta.RequiresAdminVerification = meta.HasTag(models.SourceSelfWritten) || meta.HasTag(models.SourceBookOther)
	return meta
}

// institutionalTagCount counts the declared institutional-grade sources: a
// validated YouTube video, a named university, or an approved-platform
// online course.
func (c *Calculator) institutionalTagCount(meta *models.ContentSourceMetadata) int {
	count := 0
	if meta.HasTag(models.SourceYouTube) && meta.YouTubeSource != nil && meta.YouTubeSource.Validated {
		count++
	}
	if meta.HasTag(models.SourceUniversity) && meta.UniversitySource != nil && strings.TrimSpace(meta.UniversitySource.Name) != "" {
		count++
	}
	if meta.HasTag(models.SourceOnlineCourse) && meta.OnlineCourseSource != nil {
		if c.ValidateOnlineCourse(meta.OnlineCourseSource.Platform, meta.OnlineCourseSource.CourseName, meta.OnlineCourseSource.URL).Valid {
			count++
		}
	}
	return count
}

// TrustLevelDescription returns the user-facing description for a label.
// University citations are always described as university-referenced,
// never university-approved; this wording is a content-policy rule.
func (c *Calculator) TrustLevelDescription(level models.ContentTrustLevel, meta *models.ContentSourceMetadata) string {
	base := ""
	switch level {
	case models.ContentTrustVerified:
		base = "Verified: multiple corroborating academic sources"
	case models.ContentTrustTrusted:
		base = "Trusted: corroborated by independent academic sources"
	default:
		base = "Basic: single academic source"
	}

	if meta != nil && meta.HasTag(models.SourceUniversity) {
		base += " (university-referenced)"
	}
	return base
}

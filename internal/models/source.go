package models

// SourceTag is a category of citation evidence attached to a content item.
type SourceTag string

const (
	SourceYouTube      SourceTag = "youtube"
	SourceUniversity   SourceTag = "university"
	SourceOnlineCourse SourceTag = "online_course"
	SourceSelfWritten  SourceTag = "self_written"
	SourceBookOther    SourceTag = "book_other"
)

// ContentTrustLevel labels how well a content item's citations corroborate
// it. Ordering is basic < trusted < verified.
type ContentTrustLevel string

const (
	ContentTrustBasic    ContentTrustLevel = "basic"
	ContentTrustTrusted  ContentTrustLevel = "trusted"
	ContentTrustVerified ContentTrustLevel = "verified"
)

type YouTubeSource struct {
	URL         string `json:"url" validate:"required,url"`
	ChannelName string `json:"channel_name,omitempty"`
	VideoTitle  string `json:"video_title,omitempty"`
	Validated   bool   `json:"validated"`
}

type UniversitySource struct {
	Name          string `json:"name" validate:"required,min=3,max=100"`
	CourseContext string `json:"course_context,omitempty"`
	Department    string `json:"department,omitempty"`
}

type OnlineCourseSource struct {
	Platform       string `json:"platform" validate:"required"`
	CourseName     string `json:"course_name,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
	URL            string `json:"url,omitempty"`
}

type SelfWrittenSource struct {
	AuthorName  string `json:"author_name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Expertise   string `json:"expertise,omitempty"`
}

type BookOtherSourceType string

const (
	BookSourceBook          BookOtherSourceType = "book"
	BookSourceResearchPaper BookOtherSourceType = "research_paper"
	BookSourceArticle       BookOtherSourceType = "article"
	BookSourceOther         BookOtherSourceType = "other"
)

type BookOtherSource struct {
	SourceType  BookOtherSourceType `json:"source_type" validate:"required"`
	Title       string              `json:"title" validate:"required"`
	Author      string              `json:"author,omitempty"`
	Publisher   string              `json:"publisher,omitempty"`
	ISBN        string              `json:"isbn,omitempty"`
	URL         string              `json:"url,omitempty"`
	Description string              `json:"description" validate:"required"`
}

// ContentSourceMetadata aggregates the citations declared for a content
// item. TrustLevel, MultipleSourceBonus and RequiresAdminVerification are
// derived by the source trust calculator.
type ContentSourceMetadata struct {
	SourceTags []SourceTag `json:"source_tags"`

	YouTubeSource      *YouTubeSource      `json:"youtube_source,omitempty"`
	UniversitySource   *UniversitySource   `json:"university_source,omitempty"`
	OnlineCourseSource *OnlineCourseSource `json:"online_course_source,omitempty"`
	SelfWrittenSource  *SelfWrittenSource  `json:"self_written_source,omitempty"`
	BookOtherSource    *BookOtherSource    `json:"book_other_source,omitempty"`

	TrustLevel                ContentTrustLevel `json:"trust_level"`
	MultipleSourceBonus       bool              `json:"multiple_source_bonus"`
	RequiresAdminVerification bool              `json:"requires_admin_verification"`
}

// HasTag reports whether the given source tag was declared.
func (m *ContentSourceMetadata) HasTag(tag SourceTag) bool {
	for _, t := range m.SourceTags {
		if t == tag {
			return true
		}
	}
	return false
}

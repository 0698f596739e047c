package sources

import (
	"context"
	"regexp"
	"strings"
)

// LinkCheck is the outcome of a link format validation.
type LinkCheck struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// LinkValidator checks that a citation URL has a recognized format.
// Implementations validate format and domain only, never reachability.
type LinkValidator interface {
	ValidateFormat(ctx context.Context, url string) (LinkCheck, error)
}

// youtubeWatchPattern accepts youtube.com/watch?v= and youtu.be/ URLs with
// an 11-character video id.
var youtubeWatchPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[a-zA-Z0-9_-]{11}`)

// YouTubeLinkValidator validates YouTube video URLs locally by format.
type YouTubeLinkValidator struct{}

func NewYouTubeLinkValidator() *YouTubeLinkValidator {
	return &YouTubeLinkValidator{}
}

func (v *YouTubeLinkValidator) ValidateFormat(ctx context.Context, url string) (LinkCheck, error) {
	if err := ctx.Err(); err != nil {
		return LinkCheck{Valid: false, Error: "validation cancelled"}, err
	}

	if strings.Contains(url, "/shorts/") {
		return LinkCheck{
			Valid: false,
			Error: "YouTube Shorts are not supported. Please use full-length educational videos.",
		}, nil
	}

	if !youtubeWatchPattern.MatchString(url) {
		return LinkCheck{Valid: false, Error: "Invalid YouTube URL format"}, nil
	}

	return LinkCheck{Valid: true}, nil
}

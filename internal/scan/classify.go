package scan

import (
	"strings"
	"time"

	"github.com/BlackDragon0207/siro/internal/youtube"
)

// shortsMaxDuration is the cutoff separating short-form from standard
// uploads. Exactly this long still counts as a short.
const shortsMaxDuration = 180 * time.Second

// Class labels a non-live upload for notification routing.
type Class int

const (
	// ClassStandard is a regular video upload.
	ClassStandard Class = iota
	// ClassShort is a short-form upload.
	ClassShort
)

func (c Class) String() string {
	if c == ClassShort {
		return "short"
	}
	return "standard"
}

// Classify decides whether a non-live upload is a short or a standard video.
// Duration drives the decision; when the upstream omits the duration code or
// it does not parse, a "#shorts" tag in the title or description decides
// instead, defaulting to standard.
func Classify(details *youtube.Details) Class {
	if details.Duration != "" {
		if duration, err := youtube.ParseDuration(details.Duration); err == nil {
			if duration <= shortsMaxDuration {
				return ClassShort
			}
			return ClassStandard
		}
	}
	if hasShortsTag(details.Title) || hasShortsTag(details.Description) {
		return ClassShort
	}
	return ClassStandard
}

func hasShortsTag(text string) bool {
	return strings.Contains(strings.ToLower(text), "#shorts")
}

package youtube

import (
	"errors"

	"google.golang.org/api/googleapi"
)

var (
	// ErrQuotaExhausted reports that every credential in the pool was
	// rejected within a single fetch. The caller decides whether to skip
	// the tick; the fetcher never sleeps waiting for quota to reset.
	ErrQuotaExhausted = errors.New("youtube: all credentials over quota")

	// ErrUpstream marks network and non-quota HTTP failures. These are not
	// credential-related, so the fetcher fails immediately without rotating.
	ErrUpstream = errors.New("youtube: upstream error")

	// ErrMalformed marks responses missing fields the scanners depend on.
	ErrMalformed = errors.New("youtube: malformed response")
)

// IsQuotaError reports whether err is a per-credential quota rejection that
// rotation can recover from. The Data API signals quota and rate exhaustion
// with 403 (quotaExceeded, dailyLimitExceeded) and 429.
func IsQuotaError(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 403 || apiErr.Code == 429
}

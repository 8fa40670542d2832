package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrTimeout is returned when a request exceeds the client timeout.
	ErrTimeout = crerr.New("espn request timed out")
	// ErrUnexpectedShape is returned when a payload lacks a node the parser requires.
	ErrUnexpectedShape = crerr.New("unexpected espn payload shape")

	errTransient = crerr.New("espn transient failure")
)

// APIError is a non-2xx response from the feed.
type APIError struct {
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("espn %s: status=%d body=%s", e.Path, e.Status, e.Body)
}

func shapeError(format string, args ...any) error {
	return crerr.Wrapf(ErrUnexpectedShape, format, args...)
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// isRetryable reports whether another attempt could succeed.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if crerr.Is(err, ErrTimeout) || crerr.Is(err, errTransient) {
		return true
	}
	var apiErr *APIError
	return crerr.As(err, &apiErr) && isRetryableStatus(apiErr.Status)
}

func abbreviateBody(raw []byte) string {
	const maxLen = 240
	value := string(raw)
	if len(value) <= maxLen {
		return value
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}

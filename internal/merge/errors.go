package merge

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors returned by the merge service.
var (
	ErrToolMissing  = errors.New("ffmpeg not found")
	ErrMergeFailed  = errors.New("merge failed")
	ErrSameAsInput  = errors.New("output path is one of the inputs")
	ErrEmptyVersion = errors.New("ffmpeg -version printed nothing")
)

// MaxDiagnosticLines bounds how much of ffmpeg's stderr ends up in a result
const MaxDiagnosticLines = 10

// diagnostic returns the last non-empty stderr lines, or the process error when stderr is empty
func diagnostic(stderr string, runErr error) string {
	var lines []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		if runErr != nil {
			return runErr.Error()
		}
		return "unknown error"
	}
	if len(lines) > MaxDiagnosticLines {
		lines = lines[len(lines)-MaxDiagnosticLines:]
	}
	return strings.Join(lines, "\n")
}

// firstLine returns the first line of s, trimmed
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

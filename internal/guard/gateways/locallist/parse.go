// Package locallist reads operator-maintained domain override files.
package locallist

import (
	"bufio"
	"io"
	"strings"

	logpkg "github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/common/utils"
)

const maxLineSize = 1 << 20

// Parse reads a newline-delimited list of domains.
//
// Behavior:
// - '#' starts a comment (whole-line or inline)
// - a leading BOM and surrounding whitespace are dropped
// - leading "*." or "." markers are stripped; every entry already covers its subdomains
// - names are canonicalized (lowercase, no trailing dot)
// - entries with fewer than two labels, empty labels or labels over 63 bytes are skipped
// - duplicates are removed keeping first-seen order
func Parse(r io.Reader, source string, logger logpkg.Logger) ([]string, error) {
	logger = logpkg.OrNoop(logger)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	seen := make(map[string]struct{})
	out := make([]string, 0, 64)
	logger.Debug(map[string]any{"source": source}, "parse_local_list_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")

		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}

		name := normalizeName(s)
		if !isListableName(name) {
			logger.Debug(map[string]any{"line": lineNum, "raw": s}, "skip_invalid_name")
			continue
		}
		if _, ok := seen[name]; ok {
			logger.Debug(map[string]any{"line": lineNum, "name": name}, "skip_duplicate")
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_local_list_scan_error")
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(out)}, "parse_local_list_done")
	return out, nil
}

func normalizeName(s string) string {
	s = strings.TrimPrefix(s, "*.")
	s = strings.TrimPrefix(s, ".")
	return utils.CanonicalDNSName(s)
}

// isListableName requires at least two labels, since the top-level label on
// its own is never matched.
func isListableName(name string) bool {
	if len(name) > 253 || strings.ContainsAny(name, " \t/:@*") {
		return false
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if len(l) == 0 || len(l) > 63 {
			return false
		}
	}
	return true
}

package feed

import (
	"fmt"
	"net/url"

	"github.com/suiet/guardians/internal/guard/common/log"
)

// leveledLogger adapts log.Logger to retryablehttp.LeveledLogger. Retry
// chatter is demoted to debug; URLs are reduced to scheme and host.
type leveledLogger struct {
	l log.Logger
}

func (a leveledLogger) Error(msg string, kv ...interface{}) { a.l.Warn(kvFields(kv), msg) }
func (a leveledLogger) Info(msg string, kv ...interface{})  { a.l.Debug(kvFields(kv), msg) }
func (a leveledLogger) Debug(msg string, kv ...interface{}) { a.l.Debug(kvFields(kv), msg) }
func (a leveledLogger) Warn(msg string, kv ...interface{})  { a.l.Debug(kvFields(kv), msg) }

func kvFields(kv []interface{}) map[string]any {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		val := kv[i+1]
		if key == "url" {
			switch u := val.(type) {
			case *url.URL:
				val = SanitizeURL(u.String())
			case string:
				val = SanitizeURL(u)
			}
		}
		fields[key] = val
	}
	return fields
}

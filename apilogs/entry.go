package apilogs

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofrs/uuid"
)

const (
	DefaultTable    = "APILogs"
	timestampLayout = "2006-01-02T15:04:05.000Z"
	unknown         = "unknown"
)

// LogEntry is one logged request. The id is assigned once when the entry is
// built and never changes after it is written.
type LogEntry struct {
	ID        string `json:"id"        dynamodbav:"id"`
	Timestamp string `json:"timestamp" dynamodbav:"timestamp"`
	Path      string `json:"path"      dynamodbav:"path"`
	Method    string `json:"method"    dynamodbav:"method"`
	ClientIP  string `json:"clientIp"  dynamodbav:"clientIp"`
	UserAgent string `json:"userAgent" dynamodbav:"userAgent"`
}

// NewLogID combines the millisecond clock with random bits so that two writes
// in the same millisecond do not collide.
func NewLogID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")[:8]
	return fmt.Sprintf("log_%d_%s", now.UnixMilli(), suffix)
}

func FormatTimestamp(now time.Time) string {
	return now.UTC().Format(timestampLayout)
}

func NewLogEntry(event events.APIGatewayProxyRequest, id string, now time.Time) LogEntry {
	entry := LogEntry{
		ID:        id,
		Timestamp: FormatTimestamp(now),
		Path:      event.Path,
		Method:    event.HTTPMethod,
		ClientIP:  event.RequestContext.Identity.SourceIP,
		UserAgent: header(event.Headers, "User-Agent"),
	}
	if entry.ClientIP == "" {
		entry.ClientIP = unknown
	}
	if entry.UserAgent == "" {
		entry.UserAgent = unknown
	}
	return entry
}

func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

package lib

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

var Commands = make(map[string]func())

var Args = make(map[string]interface{ Description() string })

func Contains(parts []string, part string) bool {
	for _, p := range parts {
		if p == part {
			return true
		}
	}
	return false
}

func SplitOnce(s string, sep string) (head, tail string, err error) {
	parts := strings.SplitN(s, sep, 2)
	if len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("cannot split once on %q: %s", sep, s)
}

func SplitTwice(s string, sep string) (head, mid, tail string, err error) {
	parts := strings.SplitN(s, sep, 3)
	if len(parts) == 3 {
		return parts[0], parts[1], parts[2], nil
	}
	return "", "", "", fmt.Errorf("cannot split twice on %q: %s", sep, s)
}

// Pformat renders v as indented json for log lines.
func Pformat(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

func Retry(ctx context.Context, fn func() error) error {
	return RetryAttempts(ctx, 6, fn)
}

// RetryAttempts runs fn until it succeeds, ctx is done, or attempts are
// exhausted. Wrap an error with retry.Unrecoverable to stop early.
func RetryAttempts(ctx context.Context, attempts int, fn func() error) error {
	count := 0
	return retry.Do(
		func() error {
			if count != 0 {
				Logger.Printf("retry %d/%d\n", count, attempts-1)
			}
			count++
			return fn()
		},
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(uint(attempts)),
		retry.Delay(150*time.Millisecond),
		retry.MaxDelay(2*time.Second),
	)
}

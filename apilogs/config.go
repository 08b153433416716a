package apilogs

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/nathants/apilogs/lib"
)

// Config is resolved from the environment once per process.
type Config struct {
	Table       string                       `json:"table"       yaml:"table"`
	HandlerDir  string                       `json:"handlerDir"  yaml:"handler-dir"`
	WebsiteDir  string                       `json:"websiteDir"  yaml:"website-dir"`
	VerifyTable bool                         `json:"verifyTable" yaml:"verify-table"`
	Diagnostics bool                         `json:"diagnostics" yaml:"diagnostics"`
	DynamoDB    lib.DynamoDBConnectionConfig `json:"dynamodb"    yaml:"dynamodb"`
}

func ConfigFromEnv() Config {
	cfg := Config{
		Table:       os.Getenv("APILOGS_TABLE"),
		HandlerDir:  executableDir(),
		WebsiteDir:  os.Getenv("APILOGS_WEBSITE_DIR"),
		VerifyTable: envBool("APILOGS_VERIFY_TABLE", true),
		Diagnostics: envBool("APILOGS_DIAGNOSTICS", lib.IsLocal()),
		DynamoDB:    lib.DynamoDBConnection(),
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.WebsiteDir == "" {
		cfg.WebsiteDir = DefaultWebsiteDir(cfg.HandlerDir)
	}
	return cfg
}

// DefaultWebsiteDir prefers a website directory bundled next to the handler,
// which is where a lambda zip puts it, then falls back to two directories
// above the handler as in a source checkout.
func DefaultWebsiteDir(handlerDir string) string {
	bundled := filepath.Join(handlerDir, "website")
	info, err := os.Stat(bundled)
	if err == nil && info.IsDir() {
		return bundled
	}
	return filepath.Join(handlerDir, "..", "..", "website")
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		lib.Logger.Println("error:", err)
		return "."
	}
	return filepath.Dir(exe)
}

func envBool(name string, fallback bool) bool {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		lib.Logger.Printf("ignoring %s=%q: %s\n", name, value, err)
		return fallback
	}
	return b
}

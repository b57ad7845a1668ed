// Package logging provides the process-wide structured logger amp's
// components log diagnostics through. It never carries control flow —
// every amp decision is made on typed return values, never on a logged
// string.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

var root = hclog.New(&hclog.LoggerOptions{
	Name:   "amp",
	Level:  hclog.LevelFromString(envOr("AMP_LOG_LEVEL", "warn")),
	Output: os.Stderr,
})

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// For returns the logger for a named component, e.g. logging.For("retry").
func For(component string) hclog.Logger {
	return root.Named(component)
}

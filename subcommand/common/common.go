// Package common holds code needed by multiple commands.
package common

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger returns an hclog instance with the given level, or an error if
// level is invalid.
func Logger(level string) (hclog.Logger, error) {
	parsedLevel := hclog.LevelFromString(level)
	if parsedLevel == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level: %s", level)
	}
	return hclog.New(&hclog.LoggerOptions{
		Level:  parsedLevel,
		Output: os.Stderr,
	}), nil
}

package utils

import (
	"os"
	"slices"
	"time"

	"github.com/quatfk/quatfk/logging"
)

const (
	// DefaultFrameInterval is the default time between two evaluated frames (60 frames per second).
	DefaultFrameInterval = time.Second / 60

	// FrameIntervalEnvVar is the environment variable that can be set to override DefaultFrameInterval.
	FrameIntervalEnvVar = "QUATFK_FRAME_INTERVAL"

	// DebugEnvVar turns on debug logging when set to one of EnvTrueValues.
	DebugEnvVar = "QUATFK_DEBUG"
)

// EnvTrueValues contains strings that we interpret as boolean true in env vars.
var EnvTrueValues = []string{"true", "yes", "1", "TRUE", "YES"}

// GetFrameInterval returns the frame interval (env variable value if set, DefaultFrameInterval otherwise).
func GetFrameInterval(logger logging.Logger) time.Duration {
	return durationHelper(DefaultFrameInterval, FrameIntervalEnvVar, logger)
}

// DebugFromEnv reports whether DebugEnvVar is set to a true value.
func DebugFromEnv() bool {
	return slices.Contains(EnvTrueValues, os.Getenv(DebugEnvVar))
}

func durationHelper(defaultDuration time.Duration, envVar string, logger logging.Logger) time.Duration {
	if val := os.Getenv(envVar); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			logger.Warnf("Failed to parse %s env var, falling back to default %v", envVar, defaultDuration)
			return defaultDuration
		}
		return d
	}
	return defaultDuration
}

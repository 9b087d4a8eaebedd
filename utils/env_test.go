package utils

import (
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/quatfk/quatfk/logging"
)

func TestGetFrameInterval(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)

	t.Setenv(FrameIntervalEnvVar, "")
	test.That(t, GetFrameInterval(logger), test.ShouldEqual, DefaultFrameInterval)

	t.Setenv(FrameIntervalEnvVar, "250ms")
	test.That(t, GetFrameInterval(logger), test.ShouldEqual, 250*time.Millisecond)
	test.That(t, logs.Len(), test.ShouldEqual, 0)

	for _, bad := range []string{"fast", "-1s", "0s"} {
		t.Setenv(FrameIntervalEnvVar, bad)
		test.That(t, GetFrameInterval(logger), test.ShouldEqual, DefaultFrameInterval)
	}
	test.That(t, logs.FilterMessageSnippet(FrameIntervalEnvVar).Len(), test.ShouldEqual, 3)
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv(DebugEnvVar, "")
	test.That(t, DebugFromEnv(), test.ShouldBeFalse)
	t.Setenv(DebugEnvVar, "yes")
	test.That(t, DebugFromEnv(), test.ShouldBeTrue)
	t.Setenv(DebugEnvVar, "nope")
	test.That(t, DebugFromEnv(), test.ShouldBeFalse)
}

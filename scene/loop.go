package scene

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/logging"
)

// statsWindow is how many of the most recent frame durations FrameStats summarizes.
const statsWindow = 1024

// FrameStats summarizes how long recent frames took to evaluate and render.
type FrameStats struct {
	Frames int
	Mean   time.Duration
	P95    time.Duration
	Max    time.Duration
}

// Loop evaluates a model once per tick on a single goroutine. Every frame is recomputed from a fresh
// snapshot of the controls; nothing carries over between frames.
type Loop struct {
	name     string
	model    *kinematics.Model
	source   ControlSource
	renderer Renderer
	clk      clock.Clock
	interval time.Duration
	logger   logging.Logger

	frames    int
	durations []float64
	next      int
}

// LoopConfig holds the optional settings of a Loop.
type LoopConfig struct {
	// Interval is the time between frames. It must be positive.
	Interval time.Duration
	// Clock defaults to the wall clock.
	Clock clock.Clock
}

// NewLoop returns a loop rendering model with controls from source.
func NewLoop(
	model *kinematics.Model,
	source ControlSource,
	renderer Renderer,
	cfg LoopConfig,
	logger logging.Logger,
) (*Loop, error) {
	if model == nil || source == nil || renderer == nil {
		return nil, errors.New("loop needs a model, a control source and a renderer")
	}
	if cfg.Interval <= 0 {
		return nil, errors.Errorf("frame interval must be positive, got %v", cfg.Interval)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Loop{
		name:      model.Name(),
		model:     model,
		source:    source,
		renderer:  renderer,
		clk:       clk,
		interval:  cfg.Interval,
		logger:    logger,
		durations: make([]float64, 0, statsWindow),
	}, nil
}

// Frames returns how many frames were rendered.
func (l *Loop) Frames() int {
	return l.frames
}

// Stats summarizes the durations of the most recent frames.
func (l *Loop) Stats() (FrameStats, error) {
	return summarizeDurations(l.frames, l.durations)
}

func (l *Loop) record(d time.Duration) {
	if len(l.durations) < statsWindow {
		l.durations = append(l.durations, float64(d))
		return
	}
	l.durations[l.next] = float64(d)
	l.next = (l.next + 1) % statsWindow
}

func summarizeDurations(frames int, samples []float64) (FrameStats, error) {
	st := FrameStats{Frames: frames}
	if len(samples) == 0 {
		return st, nil
	}
	mean, err := stats.Mean(samples)
	if err != nil {
		return FrameStats{}, err
	}
	p95, err := stats.PercentileNearestRank(samples, 95)
	if err != nil {
		return FrameStats{}, err
	}
	maxDuration, err := stats.Max(samples)
	if err != nil {
		return FrameStats{}, err
	}
	st.Mean = time.Duration(mean)
	st.P95 = time.Duration(p95)
	st.Max = time.Duration(maxDuration)
	return st, nil
}

func (l *Loop) logStats(msg string) {
	st, err := l.Stats()
	if err != nil {
		l.logger.Warnw("cannot summarize frame durations", "scene", l.name, "error", err)
		return
	}
	l.logger.Debugw(msg, "scene", l.name, "frames", st.Frames, "mean", st.Mean, "p95", st.P95, "max", st.Max)
}

// Step evaluates and renders one frame.
func (l *Loop) Step() error {
	start := l.clk.Now()
	controls := l.source.Controls()
	poses, err := l.model.Evaluate(controls)
	if err != nil {
		return errors.Wrapf(err, "frame %d", l.frames)
	}
	frame := Frame{Scene: l.name, Index: l.frames, Time: start, Poses: poses}
	if err := l.renderer.Render(frame); err != nil {
		return errors.Wrapf(err, "rendering frame %d", l.frames)
	}
	l.record(l.clk.Since(start))
	l.frames++
	return nil
}

// Run renders a frame immediately and then one per interval until maxFrames frames were rendered
// (forever if maxFrames <= 0) or ctx is done. Cancellation is not an error.
func (l *Loop) Run(ctx context.Context, maxFrames int) error {
	ticker := l.clk.Ticker(l.interval)
	defer ticker.Stop()

	l.logger.Infow("starting frame loop", "scene", l.name, "interval", l.interval, "max_frames", maxFrames)
	done := func() bool { return maxFrames > 0 && l.frames >= maxFrames }
	if err := l.Step(); err != nil {
		return err
	}
	for !done() {
		select {
		case <-ctx.Done():
			l.logStats("frame loop stopped")
			return nil
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
	l.logStats("frame loop finished")
	return nil
}

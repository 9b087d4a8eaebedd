package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/quatfk/quatfk/config"
	"github.com/quatfk/quatfk/logging"
	"github.com/quatfk/quatfk/scene"
	"github.com/quatfk/quatfk/utils"
)

func printf(w io.Writer, format string, a ...interface{}) {
	_, err := fmt.Fprintf(w, format+"\n", a...)
	goutils.UncheckedError(err)
}

// newLogger writes to the app's error writer so that poses on the output writer stay machine readable.
func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("quatfk")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if path := c.String(logFileFlag); path != "" {
		logger.AddAppender(logging.NewFileAppender(path))
	}
	if c.Bool(debugFlag) || utils.DebugFromEnv() {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.WARN)
	}
	return logger
}

func syncLogger(c *cli.Context, logger logging.Logger) {
	if err := logger.Sync(); err != nil {
		printf(c.App.ErrWriter, "cannot sync logs: %v", err)
	}
}

func loadConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	path := c.String(configFlag)
	if path == "" {
		cfg := scene.NewArmConfig(scene.DefaultArmStages)
		if err := cfg.Ensure(); err != nil {
			return nil, err
		}
		logger.Debugw("using built-in scene", "name", cfg.Name)
		return cfg, nil
	}
	return config.Read(path, logger)
}

func newRenderer(c *cli.Context) (scene.Renderer, error) {
	switch format := c.String(formatFlag); format {
	case formatTable:
		return scene.NewTableRenderer(c.App.Writer), nil
	case formatJSON:
		return scene.NewJSONLinesRenderer(c.App.Writer, c.Bool(matrixFlag)), nil
	default:
		return nil, errors.Errorf("unknown format %q, expected %q or %q", format, formatTable, formatJSON)
	}
}

// PoseAction is the corresponding Action for 'pose'.
func PoseAction(c *cli.Context) error {
	logger := newLogger(c)
	defer syncLogger(c, logger)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	model, err := cfg.Model()
	if err != nil {
		return err
	}
	controls := cfg.InitialControls()
	if path := c.String(controlsFlag); path != "" {
		if controls, err = config.ReadControls(path, len(cfg.Joints)); err != nil {
			return err
		}
	}
	renderer, err := newRenderer(c)
	if err != nil {
		return err
	}
	loop, err := scene.NewLoop(model, scene.StaticControls(controls), renderer,
		scene.LoopConfig{Interval: utils.DefaultFrameInterval}, logger)
	if err != nil {
		return err
	}
	return loop.Step()
}

// RunAction is the corresponding Action for 'run'.
func RunAction(c *cli.Context) (err error) {
	logger := newLogger(c)
	defer syncLogger(c, logger)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	model, err := cfg.Model()
	if err != nil {
		return err
	}

	var source scene.ControlSource = scene.StaticControls(cfg.InitialControls())
	if path := c.String(controlsFlag); path != "" {
		fileSource, fErr := scene.NewFileControlSource(path, len(cfg.Joints), logger.Sublogger("controls"))
		if fErr != nil {
			return fErr
		}
		defer func() {
			err = multierr.Combine(err, fileSource.Close())
		}()
		source = fileSource
	}

	renderer, err := newRenderer(c)
	if err != nil {
		return err
	}
	interval := c.Duration(intervalFlag)
	if interval == 0 {
		interval = utils.GetFrameInterval(logger)
	}
	loop, err := scene.NewLoop(model, source, renderer, scene.LoopConfig{Interval: interval}, logger.Sublogger("loop"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return loop.Run(ctx, c.Int(framesFlag))
}

// ValidateAction is the corresponding Action for 'validate'.
func ValidateAction(c *cli.Context) error {
	logger := newLogger(c)
	defer syncLogger(c, logger)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	if _, err := cfg.Model(); err != nil {
		return err
	}
	printf(c.App.Writer, "%s", cfg.String())
	_, err = color.New(color.FgGreen).Fprintf(c.App.Writer, "%q is valid: %d joints, %d segments\n",
		cfg.Name, len(cfg.Joints), len(cfg.Segments))
	goutils.UncheckedError(err)
	return nil
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	schema := config.Schema()
	if c.Bool(controlsFlag) {
		schema = config.ControlsSchema()
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}

// VersionAction is the corresponding Action for 'version'.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(debugFlag) || utils.DebugFromEnv() {
		printf(c.App.Writer, "%s", info.String())
	}
	version := info.Main.Version
	if version == "" {
		version = "?"
	}
	printf(c.App.Writer, "Version: %s Go Version: %s", version, info.GoVersion)
	return nil
}

// Package cli contains the quatfk command line tool: it loads a scene, evaluates it headlessly and prints
// the segment poses.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/quatfk/quatfk/utils"
)

const (
	// Flags.
	configFlag   = "config"
	debugFlag    = "debug"
	logFileFlag  = "log-file"
	controlsFlag = "controls"
	formatFlag   = "format"
	matrixFlag   = "matrix"
	framesFlag   = "frames"
	intervalFlag = "interval"

	formatTable = "table"
	formatJSON  = "json"
)

var app = &cli.App{
	Name:            "quatfk",
	Usage:           "evaluate dual quaternion forward kinematics for an articulated chain",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "load the scene from `FILE` instead of the built-in three stage arm",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging (also enabled by $" + utils.DebugEnvVar + ")",
		},
		&cli.StringFlag{
			Name:  logFileFlag,
			Usage: "also write logs to `FILE`, rotated as it grows",
		},
	},
	Commands: []*cli.Command{
		{
			Name:   "pose",
			Usage:  "print the pose of every segment for one set of controls",
			Action: PoseAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  controlsFlag,
					Usage: "read joint controls from `FILE`; joints start at rest otherwise",
				},
				&cli.StringFlag{
					Name:  formatFlag,
					Value: formatTable,
					Usage: "output format, table or json",
				},
				&cli.BoolFlag{
					Name:  matrixFlag,
					Usage: "include the homogeneous matrix of every pose in json output",
				},
			},
		},
		{
			Name:   "run",
			Usage:  "evaluate the scene every frame, reloading the controls file whenever it changes",
			Action: RunAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  controlsFlag,
					Usage: "watch joint controls in `FILE`",
				},
				&cli.IntFlag{
					Name:  framesFlag,
					Usage: "stop after this many frames, 0 runs until interrupted",
				},
				&cli.DurationFlag{
					Name:  intervalFlag,
					Usage: "time between frames (default " + utils.DefaultFrameInterval.String() + " or $" + utils.FrameIntervalEnvVar + ")",
				},
				&cli.StringFlag{
					Name:  formatFlag,
					Value: formatJSON,
					Usage: "output format, table or json",
				},
				&cli.BoolFlag{
					Name:  matrixFlag,
					Usage: "include the homogeneous matrix of every pose in json output",
				},
			},
		},
		{
			Name:   "validate",
			Usage:  "validate the scene config and print its segments",
			Action: ValidateAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of the scene config",
			Action: SchemaAction,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  controlsFlag,
					Usage: "print the schema of the controls file instead",
				},
			},
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

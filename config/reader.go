package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/a8m/envsubst"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/logging"
)

// Read reads a scene config from the given file. Environment variables referenced as ${VAR} are
// substituted before decoding.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a scene config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", originalPath)
	}
	if err := cfg.Ensure(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", originalPath)
	}
	for idx, joint := range cfg.Joints {
		if joint.Initial != nil && joint.Initial.Theta != nil && *joint.Initial.Theta == 0 {
			logger.Warnw("joint starts at theta 0, every other control of it has no effect until theta moves",
				"path", fmt.Sprintf("joints.%d.initial.theta", idx), "joint", joint.Name)
		}
	}
	logger.Debugw("read config", "path", originalPath, "name", cfg.Name,
		"joints", len(cfg.Joints), "segments", len(cfg.Segments))
	return &cfg, nil
}

// ControlsFile is the externally owned control state of a running scene: one entry per joint, in chain order.
type ControlsFile struct {
	Joints []ControlConfig `json:"joints"`
}

// ReadControls reads a controls file for a chain of jointCount joints.
func ReadControls(filePath string, jointCount int) ([]kinematics.JointControl, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	controls, err := ControlsFromReader(bytes.NewReader(buf), jointCount)
	if err != nil {
		return nil, errors.Wrapf(err, "controls file %q", filePath)
	}
	return controls, nil
}

// ControlsFromReader decodes a controls file. Joints without an entry stay at rest; more entries than
// joints is an error.
func ControlsFromReader(r io.Reader, jointCount int) ([]kinematics.JointControl, error) {
	var file ControlsFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "cannot parse controls")
	}
	if len(file.Joints) > jointCount {
		return nil, kinematics.NewControlCountMismatchError(len(file.Joints), jointCount)
	}
	controls := kinematics.NewJointControls(jointCount)
	for idx, entry := range file.Joints {
		if err := entry.Validate(fmt.Sprintf("joints.%d", idx)); err != nil {
			return nil, err
		}
		controls[idx] = entry.Control()
	}
	return controls, nil
}

// WriteControls writes controls to filePath in the controls file format.
func WriteControls(filePath string, controls []kinematics.JointControl) error {
	file := ControlsFile{Joints: make([]ControlConfig, len(controls))}
	for i, jc := range controls {
		file.Joints[i] = NewControlConfig(jc)
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	//nolint:gosec
	return os.WriteFile(filePath, append(data, '\n'), 0o644)
}

// Schema returns the JSON schema of the scene config.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// ControlsSchema returns the JSON schema of the controls file.
func ControlsSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&ControlsFile{})
}

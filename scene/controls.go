// Package scene drives a kinematics.Model frame by frame: it snapshots the joint controls from a
// ControlSource, evaluates every segment pose and hands the result to a Renderer.
package scene

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/quatfk/quatfk/config"
	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/logging"
)

// A ControlSource owns the live joint controls. Controls returns a snapshot that the caller may keep.
type ControlSource interface {
	Controls() []kinematics.JointControl
}

// StaticControls is a ControlSource whose controls never change.
type StaticControls []kinematics.JointControl

// Controls returns a copy of the controls.
func (s StaticControls) Controls() []kinematics.JointControl {
	controls := make([]kinematics.JointControl, len(s))
	copy(controls, s)
	return controls
}

// ReloadDebounce is how long the controls file must stay quiet before it is reloaded. Editors often
// produce several write events for a single save.
const ReloadDebounce = 50 * time.Millisecond

// FileControlSource serves the controls stored in a controls file and reloads them whenever the file
// changes. A file that fails to parse is logged and the last good controls are kept.
type FileControlSource struct {
	path       string
	jointCount int
	logger     logging.Logger

	mu       sync.Mutex
	controls []kinematics.JointControl
	reloads  int

	watcher                 *fsnotify.Watcher
	debounced               func(f func())
	reloadRequests          chan struct{}
	cancel                  context.CancelFunc
	activeBackgroundWorkers sync.WaitGroup
}

// NewFileControlSource reads path and starts watching it for changes. The file must exist and be valid.
func NewFileControlSource(path string, jointCount int, logger logging.Logger) (*FileControlSource, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	controls, err := config.ReadControls(absPath, jointCount)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so editors that replace the file by renaming are still seen.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "cannot watch %q", absPath), watcher.Close())
	}

	ctx, cancel := context.WithCancel(context.Background())
	src := &FileControlSource{
		path:           absPath,
		jointCount:     jointCount,
		logger:         logger,
		controls:       controls,
		watcher:        watcher,
		debounced:      debounce.New(ReloadDebounce),
		reloadRequests: make(chan struct{}, 1),
		cancel:         cancel,
	}
	src.activeBackgroundWorkers.Add(1)
	goutils.ManagedGo(func() {
		src.watch(ctx)
	}, src.activeBackgroundWorkers.Done)
	return src, nil
}

func (src *FileControlSource) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-src.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != src.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			src.debounced(src.requestReload)
		case <-src.reloadRequests:
			if err := src.Reload(); err != nil {
				src.logger.Warnw("keeping previous controls", "path", src.path, "error", err)
			}
		case err, ok := <-src.watcher.Errors:
			if !ok {
				return
			}
			src.logger.Errorw("controls watcher error", "path", src.path, "error", err)
		}
	}
}

// requestReload runs on the debounce timer. The reload itself happens on the watch goroutine.
func (src *FileControlSource) requestReload() {
	select {
	case src.reloadRequests <- struct{}{}:
	default:
	}
}

// Reload reads the controls file again. On error the current controls are left untouched.
func (src *FileControlSource) Reload() error {
	controls, err := config.ReadControls(src.path, src.jointCount)
	if err != nil {
		return err
	}
	src.mu.Lock()
	src.controls = controls
	src.reloads++
	reloads := src.reloads
	src.mu.Unlock()
	src.logger.Debugw("reloaded controls", "path", src.path, "reloads", reloads)
	return nil
}

// Controls returns a snapshot of the latest controls.
func (src *FileControlSource) Controls() []kinematics.JointControl {
	src.mu.Lock()
	defer src.mu.Unlock()
	controls := make([]kinematics.JointControl, len(src.controls))
	copy(controls, src.controls)
	return controls
}

// Reloads returns how many times the controls were successfully reloaded.
func (src *FileControlSource) Reloads() int {
	src.mu.Lock()
	defer src.mu.Unlock()
	return src.reloads
}

// Close stops watching the file.
func (src *FileControlSource) Close() error {
	src.cancel()
	err := src.watcher.Close()
	src.activeBackgroundWorkers.Wait()
	return err
}

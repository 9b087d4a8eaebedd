package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appenderLogger fans every entry at or above its level out to its appenders. Subloggers share the
// appender slice but own their level.
type appenderLogger struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	appenders []Appender
}

func (l *appenderLogger) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *appenderLogger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *appenderLogger) GetLevel() Level {
	return l.level.Get()
}

func (l *appenderLogger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return &appenderLogger{
		name:      name,
		level:     NewAtomicLevelAt(l.level.Get()),
		inUTC:     l.inUTC,
		appenders: l.appenders,
	}
}

// Sync flushes every appender. File appenders also close their file.
func (l *appenderLogger) Sync() error {
	var err error
	for _, appender := range l.appenders {
		multierr.AppendInto(&err, appender.Sync())
	}
	return err
}

func (l *appenderLogger) AsZap() *zap.SugaredLogger {
	cfg := NewZapLoggerConfig()
	cfg.Level = zap.NewAtomicLevelAt(l.level.Get().AsZap())
	sugared := zap.Must(cfg.Build()).Sugar().Named(l.name)
	// observers and other appenders that are zap cores see zap-side logs too
	for _, appender := range l.appenders {
		core, ok := appender.(zapcore.Core)
		if !ok {
			continue
		}
		sugared = sugared.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, core)
		}))
	}
	return sugared
}

func (l *appenderLogger) enabled(level Level) bool {
	return level >= l.level.Get()
}

// emit must be called directly by the exported logging method so that the caller lookup lands on
// the user's frame.
func (l *appenderLogger) emit(level Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: l.name,
		Message:    msg,
		Caller:     logCaller(),
	}
	if l.inUTC {
		entry.Time = entry.Time.UTC()
	}
	for _, appender := range l.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

var errUnpairedKey = errors.New("unpaired log key")

// pairFields turns alternating keys and values into fields. A trailing key gets errUnpairedKey as its
// value so it still shows up.
func pairFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Any(key, errUnpairedKey))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (l *appenderLogger) Debug(args ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Debugf(template string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, msg, pairFields(keysAndValues))
	}
}

func (l *appenderLogger) Info(args ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Infof(template string, args ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Infow(msg string, keysAndValues ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, msg, pairFields(keysAndValues))
	}
}

func (l *appenderLogger) Warn(args ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Warnf(template string, args ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, msg, pairFields(keysAndValues))
	}
}

func (l *appenderLogger) Error(args ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Errorf(template string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, msg, pairFields(keysAndValues))
	}
}

// Fatalf logs as an error then exits the process.
func (l *appenderLogger) Fatalf(template string, args ...interface{}) {
	l.emit(ERROR, fmt.Sprintf(template, args...), nil)
	os.Exit(1)
}

// logCaller reports the frame that called a logging method, e.g. "scene/loop.go:93".
func logCaller() zapcore.EntryCaller {
	// logCaller, emit, the logging method, its caller
	const skip = 3
	var caller zapcore.EntryCaller
	var ok bool
	caller.PC, caller.File, caller.Line, ok = runtime.Caller(skip)
	if !ok {
		return caller
	}
	caller.Defined = true
	if fn := runtime.FuncForPC(caller.PC); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}

// Package observers provides observers for monitoring the traffic light engine
package observers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/anggasct/trafficfsm"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

// ParseLogLevel maps a configuration string to a level
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "error":
		return LogError, nil
	case "warn", "warning":
		return LogWarning, nil
	case "info", "":
		return LogInfo, nil
	case "debug":
		return LogDebug, nil
	default:
		return LogInfo, trafficfsm.NewConfigurationError("LogLevel", fmt.Sprintf("unknown log level '%s'", level))
	}
}

// LoggingObserver logs engine events
type LoggingObserver struct {
	trafficfsm.BaseObserver

	level     LogLevel
	prefix    string
	out       io.Writer
	mutex     sync.RWMutex
	formatter LogFormatter
}

// LogFormatter formats log messages
type LogFormatter func(level LogLevel, format string, args ...interface{}) string

// DefaultLogFormatter provides default log formatting
func DefaultLogFormatter(level LogLevel, format string, args ...interface{}) string {
	levelStr := "INFO"
	switch level {
	case LogError:
		levelStr = "ERROR"
	case LogWarning:
		levelStr = "WARN"
	case LogInfo:
		levelStr = "INFO"
	case LogDebug:
		levelStr = "DEBUG"
	}

	return fmt.Sprintf("[%s] %s", levelStr, fmt.Sprintf(format, args...))
}

// NewLoggingObserver creates a new logging observer writing to stdout
func NewLoggingObserver(level LogLevel, prefix string) *LoggingObserver {
	return &LoggingObserver{
		level:     level,
		prefix:    prefix,
		out:       os.Stdout,
		formatter: DefaultLogFormatter,
	}
}

// SetFormatter sets the log formatter
func (o *LoggingObserver) SetFormatter(formatter LogFormatter) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.formatter = formatter
}

// SetOutput redirects log lines to w
func (o *LoggingObserver) SetOutput(w io.Writer) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.out = w
}

// log logs a message at the specified level
func (o *LoggingObserver) log(level LogLevel, format string, args ...interface{}) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if level > o.level {
		return
	}

	prefix := ""
	if o.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", o.prefix)
	}

	message := ""
	if o.formatter != nil {
		message = o.formatter(level, format, args...)
	} else {
		message = fmt.Sprintf(format, args...)
	}

	fmt.Fprintf(o.out, "%s%s\n", prefix, message)
}

// OnStateEnter logs the emitted outputs
func (o *LoggingObserver) OnStateEnter(state trafficfsm.StateID, main trafficfsm.LampPattern, ped trafficfsm.PedPattern) {
	o.log(LogDebug, "Emit %s: %s ped=%s", state, main, ped)
}

// OnTransition logs state changes at info and self-transitions at debug
func (o *LoggingObserver) OnTransition(from, to trafficfsm.StateID, input trafficfsm.InputVector) {
	if from == to {
		o.log(LogDebug, "Stay %s on input %s", from, input)
		return
	}
	o.log(LogInfo, "Transition: %s -> %s on input %s", from, to, input)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log(LogError, "Error: %v", err)
}

// OnEngineStarted logs engine start
func (o *LoggingObserver) OnEngineStarted(engineID string, initial trafficfsm.StateID) {
	o.log(LogInfo, "Engine %s started in %s", engineID, initial)
}

// OnEngineStopped logs engine stop
func (o *LoggingObserver) OnEngineStopped(engineID string, err error) {
	if err != nil {
		o.log(LogWarning, "Engine %s stopped: %v", engineID, err)
		return
	}
	o.log(LogInfo, "Engine %s stopped", engineID)
}

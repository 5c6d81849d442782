// Package tools holds small CLI-facing utilities: logging, flag parsing,
// input-file discovery, and progress telemetry.
package tools

import (
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// LogOutput prints an informational progress line. Progress reporting is
// purely informational: it never aborts the run.
func LogOutput(val ...interface{}) {
	if !isEnabled {
		return
	}
	if printTimestamp {
		glog.Info("[" + time.Now().Format("2006-01-02 15.04:05.000") + "] ")
	}
	glog.Info(val...)
}

// Fatal reports a configuration or resource error and terminates the
// process, mirroring the log.Fatal(err) entry points of pkg/tiler.go.
func Fatal(err error) {
	glog.Fatal(err)
}

/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp     = "app"
	SourceDataset = "dataset"
	SourceDB      = "db"
	SourcePlot    = "plot"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger

	issuedMu sync.Mutex
	issued   []*log.Logger
)

// Init configures the base logger and stdlib log output.
//
// Output goes to stderr so that menu and report text on stdout stays readable.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// SetLevel changes the minimum level of the base logger and of every logger
// handed out by Logger. Unknown level names are rejected.
func SetLevel(name string) error {
	Init()

	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}

	issuedMu.Lock()
	defer issuedMu.Unlock()

	baseLogger.SetLevel(level)
	for _, l := range issued {
		l.SetLevel(level)
	}

	return nil
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()

	l := baseLogger.With("source", source)

	issuedMu.Lock()
	issued = append(issued, l)
	issuedMu.Unlock()

	return l
}

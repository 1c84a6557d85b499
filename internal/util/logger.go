// Package util holds helpers shared by tests and the example binaries.
package util

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressLogger tracks and prints progress of a fixed number of events.
type ProgressLogger struct {
	out            io.Writer
	totalEvents    uint64
	prefix         string
	loggedEvents   uint64
	logStep        uint64
	nextEventToLog uint64
	enabled        bool
	startTime      time.Time
}

// NewProgressLogger creates a new progress logger writing to out.
func NewProgressLogger(out io.Writer, totalEvents uint64, prefix string, enable bool) *ProgressLogger {
	pl := &ProgressLogger{
		out:         out,
		totalEvents: totalEvents,
		prefix:      prefix,
		enabled:     enable,
		startTime:   time.Now(),
	}

	percFraction := uint64(20) // 5% steps
	if totalEvents >= 100_000_000 {
		percFraction = 100
	}
	pl.logStep = (totalEvents + percFraction - 1) / percFraction
	if pl.logStep == 0 {
		pl.logStep = 1
	}

	if enable {
		pl.nextEventToLog = pl.logStep
		pl.update(false)
	} else {
		pl.nextEventToLog = ^uint64(0)
	}
	return pl
}

// Add records n more events and prints when a step boundary is crossed.
func (pl *ProgressLogger) Add(n uint64) {
	if !pl.enabled {
		return
	}
	pl.loggedEvents += n
	if pl.loggedEvents >= pl.nextEventToLog {
		pl.update(false)
		for pl.nextEventToLog <= pl.loggedEvents {
			pl.nextEventToLog += pl.logStep
		}
	}
}

// Logged returns the number of events recorded so far.
func (pl *ProgressLogger) Logged() uint64 {
	return pl.loggedEvents
}

// Finalize prints the 100% progress update with the elapsed time.
func (pl *ProgressLogger) Finalize() {
	if !pl.enabled {
		return
	}
	pl.loggedEvents = pl.totalEvents
	pl.update(true)
}

func (pl *ProgressLogger) update(final bool) {
	perc := uint64(100)
	if pl.totalEvents > 0 {
		perc = (100 * pl.loggedEvents) / pl.totalEvents
	}
	fmt.Fprintf(pl.out, "\r%s%d%%", pl.prefix, perc)
	if final {
		fmt.Fprintf(pl.out, " (%.2fs)\n", time.Since(pl.startTime).Seconds())
	} else {
		fmt.Fprint(pl.out, strings.Repeat(" ", 4))
	}
}

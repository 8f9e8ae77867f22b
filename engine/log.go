// Copyright (C) 2024 the gammatrace authors.
// This file is part of gammatrace.
//
// gammatrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gammatrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with gammatrace.  If not, see <http://www.gnu.org/licenses/>.

package engine

import (
	"time"

	"go.uber.org/zap"
)

// ProgressLogger reports batch-level progress and per-state numerical
// warnings through a structured zap logger.
type ProgressLogger struct {
	log       *zap.SugaredLogger
	startTime time.Time
}

// NewProgressLogger wraps log for use by an Engine. A nil *zap.Logger
// disables progress reporting entirely.
func NewProgressLogger(log *zap.Logger) *ProgressLogger {
	if log == nil {
		return nil
	}
	return &ProgressLogger{log: log.Sugar(), startTime: time.Now()}
}

// BatchStarted logs the start of a TransportBatch call.
func (p *ProgressLogger) BatchStarted(runID string, n int) {
	if p == nil {
		return
	}
	p.log.Infow("transport batch started", "run_id", runID, "states", n)
}

// BatchFinished logs the end of a TransportBatch call with summary
// counts per terminal status.
func (p *ProgressLogger) BatchFinished(runID string, n int, counts map[TransportStatus]int) {
	if p == nil {
		return
	}
	fields := make([]interface{}, 0, 4+2*len(counts))
	fields = append(fields, "run_id", runID, "states", n, "elapsed_s", time.Since(p.startTime).Seconds())
	for status, count := range counts {
		fields = append(fields, status.String()+"_count", count)
	}
	p.log.Infow("transport batch finished", fields...)
}

// NumericalWarning logs a per-state numerical guard event (a log/exp
// clamp, a negative column density, or an ERROR status transition).
func (p *ProgressLogger) NumericalWarning(stateIndex int, energy float64, sector int, reason string) {
	if p == nil {
		return
	}
	p.log.Warnw("numerical guard triggered",
		"state_index", stateIndex, "energy", energy, "sector", sector, "reason", reason)
}

// Package telemetry appends one CSV row per scored point.
package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/diegok/solopong/internal/protocol"
)

// PointRecord is one scored point
type PointRecord struct {
	MatchID     string `csv:"match_id"`
	Tick        int    `csv:"tick"`
	Scorer      string `csv:"scorer"`
	PlayerScore int    `csv:"player_score"`
	AIScore     int    `csv:"ai_score"`
	RallyHits   int    `csv:"rally_hits"`
	Difficulty  string `csv:"difficulty"`
	Multiplayer bool   `csv:"multiplayer"`
}

// NewPointRecord builds a row from the snapshot taken right after the point
func NewPointRecord(matchID string, state protocol.MatchState, rallyHits int) PointRecord {
	return PointRecord{
		MatchID:     matchID,
		Tick:        state.Tick,
		Scorer:      state.LastScorer.String(),
		PlayerScore: state.PlayerScore,
		AIScore:     state.AIScore,
		RallyHits:   rallyHits,
		Difficulty:  state.Difficulty,
		Multiplayer: state.Multiplayer,
	}
}

// PointLog writes PointRecords to a CSV stream. A nil *PointLog discards
// everything, so callers need not check whether stats are enabled.
type PointLog struct {
	out           io.Writer
	closer        io.Closer
	headerWritten bool
}

// Open appends to the CSV file at path, creating it if needed. The header
// row is only written to an empty file. An empty path returns a nil log.
func Open(path string) (*PointLog, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening stats file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening stats file: %w", err)
	}

	return &PointLog{out: f, closer: f, headerWritten: info.Size() > 0}, nil
}

// NewPointLog writes to w, starting with a header row
func NewPointLog(w io.Writer) *PointLog {
	return &PointLog{out: w}
}

// Write appends one record
func (l *PointLog) Write(rec PointRecord) error {
	if l == nil {
		return nil
	}

	records := []PointRecord{rec}

	if !l.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, l.out); err != nil {
			return fmt.Errorf("writing point: %w", err)
		}
		l.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, l.out); err != nil {
			return fmt.Errorf("writing point: %w", err)
		}
	}

	return nil
}

func (l *PointLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ReadPoints parses a point log written by PointLog
func ReadPoints(r io.Reader) ([]PointRecord, error) {
	var records []PointRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading points: %w", err)
	}
	return records, nil
}

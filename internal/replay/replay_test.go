package replay

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/protocol"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

// blockingWriter holds every Write until release is closed
type blockingWriter struct {
	release chan struct{}
	buf     bytes.Buffer
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.release
	return w.buf.Write(p)
}

func (w *blockingWriter) Close() error { return nil }

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error                { return nil }

func playMatch(ticks int) []protocol.MatchState {
	m := game.NewMatch(game.FieldWidth, game.FieldHeight, game.WinningScore, rand.New(rand.NewSource(1)))
	m.StartGame()

	states := make([]protocol.MatchState, 0, ticks)
	for i := 0; i < ticks; i++ {
		m.Tick()
		states = append(states, m.Snapshot())
	}
	return states
}

func TestRecorder_RoundTrip(t *testing.T) {
	out := &bufferCloser{}
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	header := protocol.RecordingHeader{
		MatchID:    "match-1",
		StartedAt:  started,
		Difficulty: "hard",
		Seed:       1,
		TickMillis: 16,
	}

	rec, err := NewRecorder(out, header)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	states := playMatch(200)
	for _, s := range states {
		rec.Record(s)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !out.closed {
		t.Error("expected output closed")
	}
	if rec.Dropped() != 0 {
		t.Errorf("expected no dropped snapshots, got %d", rec.Dropped())
	}

	r, err := NewReader(&out.Buffer)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if r.Header.MatchID != "match-1" || r.Header.Difficulty != "hard" || !r.Header.StartedAt.Equal(started) {
		t.Errorf("header mismatch: %+v", r.Header)
	}

	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(states) {
		t.Fatalf("expected %d snapshots, got %d", len(states), len(got))
	}
	for i := range states {
		if got[i] != states[i] {
			t.Fatalf("snapshot %d differs:\n got %+v\nwant %+v", i, got[i], states[i])
		}
	}
}

func TestRecorder_GeneratesMatchID(t *testing.T) {
	rec, err := NewRecorder(&bufferCloser{}, protocol.RecordingHeader{})
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	defer rec.Close()

	if _, err := uuid.Parse(rec.Header.MatchID); err != nil {
		t.Errorf("expected a UUID match id, got %q: %v", rec.Header.MatchID, err)
	}
}

func TestRecorder_DropsWhenWriterStalls(t *testing.T) {
	out := &blockingWriter{release: make(chan struct{})}
	rec, err := NewRecorder(out, protocol.RecordingHeader{MatchID: "stall"})
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	const sent = 3000
	states := playMatch(sent)
	for _, s := range states {
		rec.Record(s)
	}

	if rec.Dropped() == 0 {
		t.Error("expected snapshots dropped while the writer is stalled")
	}

	close(out.release)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := NewReader(&out.buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if int64(len(got))+rec.Dropped() != sent {
		t.Errorf("expected recorded + dropped = %d, got %d + %d", sent, len(got), rec.Dropped())
	}
}

func TestRecorder_RecordAfterClose(t *testing.T) {
	rec, err := NewRecorder(&bufferCloser{}, protocol.RecordingHeader{})
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rec.Record(protocol.MatchState{Tick: 1})

	if err := rec.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestRecorder_ReportsWriteError(t *testing.T) {
	rec, err := NewRecorder(failingWriter{}, protocol.RecordingHeader{})
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	rec.Record(protocol.MatchState{Tick: 1})

	if err := rec.Close(); err == nil {
		t.Error("expected Close to report the write failure")
	}
}

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.gob")

	rec, err := Create(path, protocol.RecordingHeader{Multiplayer: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, s := range playMatch(10) {
		rec.Record(s)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	if r.Header.MatchID != rec.Header.MatchID || !r.Header.Multiplayer {
		t.Errorf("header mismatch: got %+v, want %+v", r.Header, rec.Header)
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 snapshots, got %d", len(got))
	}
	if got[0].Tick != 1 || got[9].Tick != 10 {
		t.Errorf("unexpected tick range %d..%d", got[0].Tick, got[9].Tick)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewReader_NotARecording(t *testing.T) {
	tests := []struct {
		name string
		data func() []byte
	}{
		{"garbage", func() []byte { return []byte("definitely not gob") }},
		{"empty", func() []byte { return nil }},
		{"state without header", func() []byte {
			var buf bytes.Buffer
			enc := protocol.NewEncoder(&buf)
			enc.Encode(&protocol.Message{Type: protocol.MsgMatchState, Payload: protocol.MatchState{Tick: 1}})
			enc.Flush()
			return buf.Bytes()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tt.data()))
			if !errors.Is(err, ErrNotRecording) {
				t.Errorf("expected ErrNotRecording, got %v", err)
			}
		})
	}
}

// Package replay records match snapshots to a gob stream and plays them back.
package replay

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/diegok/solopong/internal/protocol"
)

const sendBufferSize = 1024

// Recorder writes one snapshot per tick on a background goroutine so the
// game loop never blocks on disk.
type Recorder struct {
	Header protocol.RecordingHeader

	out     io.WriteCloser
	codec   *protocol.Codec
	sendCh  chan protocol.MatchState
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	dropped atomic.Int64
	err     error // first write error, owned by the writer until wg is done
}

// Create opens path for writing and starts a recorder on it
func Create(path string, header protocol.RecordingHeader) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	r, err := NewRecorder(f, header)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// NewRecorder writes the header to out and starts the writer goroutine.
// An empty MatchID is replaced by a fresh UUID.
func NewRecorder(out io.WriteCloser, header protocol.RecordingHeader) (*Recorder, error) {
	if header.MatchID == "" {
		header.MatchID = uuid.NewString()
	}

	r := &Recorder{
		Header: header,
		out:    out,
		codec:  protocol.NewEncoder(out),
		sendCh: make(chan protocol.MatchState, sendBufferSize),
	}

	if err := r.codec.Encode(&protocol.Message{Type: protocol.MsgRecordingHeader, Payload: header}); err != nil {
		return nil, fmt.Errorf("writing recording header: %w", err)
	}

	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	for state := range r.sendCh {
		if r.err != nil {
			continue
		}
		if err := r.codec.Encode(&protocol.Message{Type: protocol.MsgMatchState, Payload: state}); err != nil {
			r.err = fmt.Errorf("writing tick %d: %w", state.Tick, err)
		}
	}
}

// Record queues a snapshot (non-blocking). Snapshots are dropped when the
// writer falls behind or after Close.
func (r *Recorder) Record(state protocol.MatchState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.sendCh <- state:
	default:
		r.dropped.Add(1)
	}
}

// Dropped reports how many snapshots were lost to a full buffer
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close drains the queue, flushes and closes the output. It returns the
// first error seen while writing.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.sendCh)
	r.mu.Unlock()

	r.wg.Wait()

	err := r.err
	if ferr := r.codec.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("flushing recording: %w", ferr)
	}
	if cerr := r.out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing recording: %w", cerr)
	}
	return err
}

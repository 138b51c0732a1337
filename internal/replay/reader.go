package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diegok/solopong/internal/protocol"
)

// ErrNotRecording means the stream does not start with a recording header
var ErrNotRecording = errors.New("not a solopong recording")

// Reader plays back a stream written by Recorder
type Reader struct {
	Header protocol.RecordingHeader

	in    io.Closer
	codec *protocol.Codec
}

// Open reads the header of the recording at path
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.in = f
	return r, nil
}

// NewReader decodes the header from in. Closing the Reader does not close in.
func NewReader(in io.Reader) (*Reader, error) {
	codec := protocol.NewDecoder(in)

	msg, err := codec.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotRecording, err)
	}
	header, ok := msg.Payload.(protocol.RecordingHeader)
	if msg.Type != protocol.MsgRecordingHeader || !ok {
		return nil, ErrNotRecording
	}

	return &Reader{Header: header, codec: codec}, nil
}

// Next returns the next snapshot, or io.EOF at the end of the recording
func (r *Reader) Next() (protocol.MatchState, error) {
	msg, err := r.codec.Decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return protocol.MatchState{}, io.EOF
		}
		return protocol.MatchState{}, fmt.Errorf("reading recording: %w", err)
	}

	state, ok := msg.Payload.(protocol.MatchState)
	if msg.Type != protocol.MsgMatchState || !ok {
		return protocol.MatchState{}, fmt.Errorf("reading recording: unexpected message type %d", msg.Type)
	}
	return state, nil
}

// ReadAll collects the remaining snapshots
func (r *Reader) ReadAll() ([]protocol.MatchState, error) {
	var states []protocol.MatchState
	for {
		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			return states, nil
		}
		if err != nil {
			return states, err
		}
		states = append(states, s)
	}
}

func (r *Reader) Close() error {
	if r.in == nil {
		return nil
	}
	return r.in.Close()
}

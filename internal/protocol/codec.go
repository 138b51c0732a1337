package protocol

import (
	"bufio"
	"encoding/gob"
	"io"
)

// Codec handles message encoding/decoding
type Codec struct {
	enc *gob.Encoder
	dec *gob.Decoder
	buf *bufio.Writer
}

// NewEncoder creates an encoder-only codec. Encoded messages are buffered
// until Flush is called.
func NewEncoder(w io.Writer) *Codec {
	buf := bufio.NewWriter(w)
	return &Codec{
		enc: gob.NewEncoder(buf),
		buf: buf,
	}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{
		dec: gob.NewDecoder(bufio.NewReader(r)),
	}
}

// Encode writes a message
func (c *Codec) Encode(msg *Message) error {
	return c.enc.Encode(msg)
}

// Flush pushes buffered messages to the underlying writer
func (c *Codec) Flush() error {
	if c.buf == nil {
		return nil
	}
	return c.buf.Flush()
}

// Decode reads a message
func (c *Codec) Decode() (*Message, error) {
	var msg Message
	if err := c.dec.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

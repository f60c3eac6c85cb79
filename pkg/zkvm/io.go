package zkvm

import (
	"bytes"
	"encoding"
	"errors"
)

var (
	ErrAlreadyCommitted = errors.New("public output already committed")
	ErrNoOutput         = errors.New("guest committed no public output")
)

// Stdin is the private input stream handed to a guest.
type Stdin struct {
	buf bytes.Buffer
}

func NewStdin() *Stdin { return &Stdin{} }

// Write appends the binary encoding of v.
func (s *Stdin) Write(v encoding.BinaryMarshaler) error {
	b, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	s.buf.Write(b)
	return nil
}

func (s *Stdin) Bytes() []byte { return s.buf.Bytes() }

// Sink receives a guest's public output. Implementations accept exactly one
// Commit per run.
type Sink interface {
	Commit(b []byte) error
}

// OutputBuffer is the in-memory write-once Sink used by Client.
type OutputBuffer struct {
	out       []byte
	committed bool
}

func (o *OutputBuffer) Commit(b []byte) error {
	if o.committed {
		return ErrAlreadyCommitted
	}
	o.out = bytes.Clone(b)
	o.committed = true
	return nil
}

func (o *OutputBuffer) Committed() bool { return o.committed }

// Bytes returns a copy of the committed output.
func (o *OutputBuffer) Bytes() []byte { return bytes.Clone(o.out) }

package plancodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gogo/protobuf/proto"
	"github.com/oklog/ulid/v2"

	engineerrors "github.com/strata-db/strata/pkg/engine/internal/errors"
	"github.com/strata-db/strata/pkg/engine/internal/proto/physicalpb"
)

// Frame is a plan fragment sent over a stream.
type Frame struct {
	// FragmentID identifies the fragment on both ends of the stream.
	FragmentID ulid.ULID
	Plan       Plan
}

// NewFrame returns a frame for plan with a new fragment ID.
func NewFrame(plan Plan) Frame {
	return Frame{FragmentID: ulid.Make(), Plan: plan}
}

// FrameProtocol reads and writes length-prefixed frames:
// [4-byte length (big-endian)][PlanFrame protobuf payload]
type FrameProtocol struct {
	maxFrameSizeBytes uint32
}

// NewFrameProtocol returns a protocol rejecting frames whose payload is larger
// than maxFrameSizeBytes.
func NewFrameProtocol(maxFrameSizeBytes uint32) *FrameProtocol {
	return &FrameProtocol{maxFrameSizeBytes: maxFrameSizeBytes}
}

// DefaultFrameProtocol accepts frames up to [DefaultMaxPlanSizeBytes].
var DefaultFrameProtocol = NewFrameProtocol(DefaultMaxPlanSizeBytes)

// WriteFrame encodes frame and writes it to w.
func (p *FrameProtocol) WriteFrame(w io.Writer, frame Frame) error {
	node := new(physicalpb.Node)
	if err := node.UnmarshalPhysical(frame.Plan); err != nil {
		return err
	}

	data, err := proto.Marshal(&physicalpb.PlanFrame{
		FragmentId: frame.FragmentID[:],
		Plan:       node,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWireEncoding, err)
	}
	if uint64(len(data)) > uint64(p.maxFrameSizeBytes) {
		return fmt.Errorf("%w: frame size %d exceeds maximum %d", ErrWireEncoding, len(data), p.maxFrameSizeBytes)
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write length prefix: %w", err)
	}
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("incomplete write: wrote %d bytes, expected %d", n, len(data))
	}
	return nil
}

// ReadFrame reads and decodes the next frame from r. It returns [io.EOF] if r
// is exhausted before a new frame starts.
func (p *FrameProtocol) ReadFrame(r io.Reader) (Frame, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("%w: failed to read length prefix: %w", ErrWireDecoding, err)
	}

	// Checked before allocating the payload.
	length := binary.BigEndian.Uint32(header[:])
	if length > p.maxFrameSizeBytes {
		return Frame{}, fmt.Errorf("%w: frame size %d exceeds maximum %d", ErrWireDecoding, length, p.maxFrameSizeBytes)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return Frame{}, fmt.Errorf("%w: failed to read payload: %w", ErrWireDecoding, err)
	}

	pbFrame := new(physicalpb.PlanFrame)
	if err := proto.Unmarshal(data, pbFrame); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrWireDecoding, err)
	}

	var frame Frame
	if err := frame.FragmentID.UnmarshalBinary(pbFrame.FragmentId); err != nil {
		return Frame{}, fmt.Errorf("%w: fragment id: %w", ErrWireDecoding, err)
	}
	if pbFrame.Plan == nil {
		return Frame{}, engineerrors.MissingField("plan")
	}

	plan, err := pbFrame.Plan.MarshalPhysical()
	if err != nil {
		return Frame{}, err
	}
	frame.Plan = plan
	return frame, nil
}

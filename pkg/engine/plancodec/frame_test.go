package plancodec

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
)

func TestFrameProtocol_RoundTrip(t *testing.T) {
	p := NewFrameProtocol(DefaultMaxPlanSizeBytes)

	first := NewFrame(projectIDAndName(t))
	sample, err := SamplePlan("sample", 2)
	require.NoError(t, err)
	second := NewFrame(sample)
	require.NotEqual(t, first.FragmentID, second.FragmentID)

	var buf bytes.Buffer
	require.NoError(t, p.WriteFrame(&buf, first))
	require.NoError(t, p.WriteFrame(&buf, second))

	for _, expect := range []Frame{first, second} {
		actual, err := p.ReadFrame(&buf)
		require.NoError(t, err)
		require.Equal(t, expect.FragmentID, actual.FragmentID)
		require.Equal(t, physical.PrintAsTree(expect.Plan), physical.PrintAsTree(actual.Plan))
	}

	_, err = p.ReadFrame(&buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestFrameProtocol_ReadErrors(t *testing.T) {
	p := NewFrameProtocol(64)

	var valid bytes.Buffer
	require.NoError(t, p.WriteFrame(&valid, NewFrame(physical.NewMockInput("t"))))
	frame := valid.Bytes()

	oversized := binary.BigEndian.AppendUint32(nil, 65)

	tests := map[string]struct {
		data   []byte
		expect error
	}{
		"short length prefix": {
			data:   frame[:2],
			expect: ErrWireDecoding,
		},
		"short payload": {
			data:   frame[:len(frame)-1],
			expect: ErrWireDecoding,
		},
		"oversized frame": {
			data:   oversized,
			expect: ErrWireDecoding,
		},
		"missing fragment id": {
			data:   []byte{0, 0, 0, 0},
			expect: ErrWireDecoding,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.ReadFrame(bytes.NewReader(tc.data))
			require.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestFrameProtocol_MissingPlan(t *testing.T) {
	id := ulid.Make()
	payload := append([]byte{1<<3 | 2, 16}, id[:]...)
	data := append(binary.BigEndian.AppendUint32(nil, uint32(len(payload))), payload...)

	_, err := DefaultFrameProtocol.ReadFrame(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrMissingField)
}

func TestFrameProtocol_WriteErrors(t *testing.T) {
	var buf bytes.Buffer

	err := DefaultFrameProtocol.WriteFrame(&buf, Frame{FragmentID: ulid.Make()})
	require.ErrorIs(t, err, ErrUnsupportedPlanType)

	err = NewFrameProtocol(8).WriteFrame(&buf, NewFrame(projectIDAndName(t)))
	require.ErrorIs(t, err, ErrWireEncoding)

	require.Zero(t, buf.Len(), "nothing may be written for a rejected frame")
}

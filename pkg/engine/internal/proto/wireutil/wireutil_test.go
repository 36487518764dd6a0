package wireutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestRangeFields(t *testing.T) {
	var b []byte
	b = AppendString(b, 1, "name")
	b = AppendVarint(b, 2, 42)
	b = AppendBool(b, 3, true)
	b = AppendDouble(b, 4, 1.5)
	b = AppendBytes(b, 99, []byte{0xff})

	var (
		gotName   string
		gotVarint uint64
		gotBool   bool
		gotDouble float64
		skipped   []protowire.Number
	)
	err := RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			gotName, n, err = ConsumeString(num, typ, b)
		case 2:
			gotVarint, n, err = ConsumeVarint(num, typ, b)
		case 3:
			gotBool, n, err = ConsumeBool(num, typ, b)
		case 4:
			gotDouble, n, err = ConsumeDouble(num, typ, b)
		default:
			skipped = append(skipped, num)
			n, err = SkipField(num, typ, b)
		}
		return n, err
	})
	require.NoError(t, err)

	require.Equal(t, "name", gotName)
	require.Equal(t, uint64(42), gotVarint)
	require.True(t, gotBool)
	require.Equal(t, 1.5, gotDouble)
	require.Equal(t, []protowire.Number{99}, skipped)
}

func TestRangeFields_Errors(t *testing.T) {
	t.Run("wrong wire type", func(t *testing.T) {
		b := AppendVarint(nil, 1, 7)
		err := RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			_, n, err := ConsumeString(num, typ, b)
			return n, err
		})
		require.ErrorContains(t, err, "unexpected wire type")
	})

	t.Run("truncated value", func(t *testing.T) {
		b := AppendString(nil, 1, "truncated")
		err := RangeFields(b[:len(b)-2], func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			_, n, err := ConsumeString(num, typ, b)
			return n, err
		})
		require.Error(t, err)
	})

	t.Run("truncated tag", func(t *testing.T) {
		err := RangeFields([]byte{0x80}, func(protowire.Number, protowire.Type, []byte) (int, error) {
			t.Fatal("fn must not be called")
			return 0, nil
		})
		require.Error(t, err)
	})
}

package varnum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendUvarint_KnownVectors(t *testing.T) {
	require.Equal(t, []byte{0x0D}, AppendUvarint(nil, 13))
	require.Equal(t, []byte{0x80, 0x01}, AppendUvarint(nil, 128))
	require.Equal(t, []byte{0x95, 0x9A, 0xEF, 0x3A}, AppendUvarint(nil, 123456789))
}

func TestUvarint_RoundTrip(t *testing.T) {
	values := []uint32{
		0, 1, 13, 127, 128, 129, 300, 13000,
		1<<14 - 1, 1 << 14, 1<<21 - 1, 1 << 21, 1<<28 - 1, 1 << 28,
		123456789, 1<<32 - 1,
	}

	for _, v := range values {
		encoded := AppendUvarint(nil, v)
		require.GreaterOrEqual(t, len(encoded), 1)
		require.LessOrEqual(t, len(encoded), MaxUvarintLen32)
		require.Equal(t, UvarintSize(v), len(encoded), "size mismatch for %d", v)

		decoded, n := Uvarint(encoded)
		require.Equal(t, len(encoded), n, "consumed length for %d", v)
		require.Equal(t, v, decoded)
	}
}

func TestUvarint_RoundTrip_Sweep(t *testing.T) {
	// Dense sweep over the low range plus strided coverage of the rest of
	// the 32-bit domain.
	for v := uint32(0); v < 1<<16; v++ {
		decoded, n := Uvarint(AppendUvarint(nil, v))
		require.NotZero(t, n)
		require.Equal(t, v, decoded)
	}

	for v := uint64(1 << 16); v < 1<<32; v += 982451653 % (1 << 24) {
		u := uint32(v)
		decoded, n := Uvarint(AppendUvarint(nil, u))
		require.NotZero(t, n)
		require.Equal(t, u, decoded)
	}
}

func TestUvarint_Malformed(t *testing.T) {
	// All continuation bits set, no terminator.
	_, n := Uvarint([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	require.Zero(t, n)

	_, n = Uvarint(nil)
	require.Zero(t, n)
}

func TestZigZag(t *testing.T) {
	cases := map[int32]uint32{
		0:           0,
		-1:          1,
		1:           2,
		-2:          3,
		2:           4,
		2147483647:  4294967294,
		-2147483648: 4294967295,
	}

	for v, want := range cases {
		require.Equal(t, want, ZigZag(v), "zigzag(%d)", v)
		require.Equal(t, v, UnZigZag(want), "unzigzag(%d)", want)
	}
}

func TestVarint_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2, -2, 13, -13, 1 << 20, -(1 << 20), 2147483647, -2147483648} {
		decoded, n := Varint(AppendVarint(nil, v))
		require.NotZero(t, n)
		require.Equal(t, v, decoded)
		require.Equal(t, VarintSize(v), n)
	}
}

func TestAppendString(t *testing.T) {
	// Length 2 zig-zags to 4; the framing is the signed varint of the byte
	// length followed by UTF-8 bytes.
	require.Equal(t, []byte{0x04, 's', '1'}, AppendString(nil, "s1"))
	require.Equal(t, []byte{0x00}, AppendString(nil, ""))

	for _, s := range []string{"", "s1", "d1.s1", "root.sg.device.measurement"} {
		encoded := AppendString(nil, s)
		require.Equal(t, StringSize(s), len(encoded))

		decoded, n := String(encoded)
		require.Equal(t, len(encoded), n)
		require.Equal(t, s, decoded)
	}
}

func TestString_Malformed(t *testing.T) {
	// Declared length longer than the remaining bytes.
	_, n := String([]byte{0x08, 'a'})
	require.Zero(t, n)

	_, n = String(nil)
	require.Zero(t, n)
}

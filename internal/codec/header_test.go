package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHeaderValidatesMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	order.PutUint32(buf[0:4], 0xdeadbeef)
	_, err := DecodeHeader(buf)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrInvalidMagic, ce.Kind)
}

func TestDecodeHeaderTooSmall(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 10))
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrBufferTooSmall, ce.Kind)
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		TotalSize:     128,
		OffDtStruct:   40,
		OffDtStrings:  100,
		OffMemRsvmap:  40,
		BootCPUIDPhys: 7,
		SizeDtStrings: 20,
		SizeDtStruct:  60,
	}
	buf := make([]byte, HeaderSize)
	EncodeHeader(buf, h)

	// Decode from a buffer as long as h.TotalSize (128 bytes) so the
	// containment checks pass; only the header bytes are filled in.
	full := make([]byte, 128)
	copy(full, buf)

	got, err := DecodeHeader(full)
	require.NoError(t, err)
	require.Equal(t, uint32(Magic), got.Magic)
	require.Equal(t, uint32(Version), got.Version)
	require.Equal(t, uint32(LastCompVersion), got.LastCompVersion)
	require.Equal(t, h.BootCPUIDPhys, got.BootCPUIDPhys)
	require.Equal(t, h.OffDtStruct, got.OffDtStruct)
	require.Equal(t, h.OffDtStrings, got.OffDtStrings)
}

func TestReservationsRoundTrip(t *testing.T) {
	rsvs := []MemoryReservation{
		{Address: 0x40000000, Size: 0x04000000},
		{Address: 0x80000000, Size: 0x00100000},
	}
	buf := EncodeReservations(nil, rsvs)

	got, err := DecodeReservations(buf, 0)
	require.NoError(t, err)
	require.Equal(t, rsvs, got)
}

func TestReservationsEmpty(t *testing.T) {
	buf := EncodeReservations(nil, nil)
	require.Len(t, buf, RsvEntrySize)
	got, err := DecodeReservations(buf, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAlignUp(t *testing.T) {
	cases := map[int]int{0: 0, 1: 4, 3: 4, 4: 4, 5: 8}
	for in, want := range cases {
		require.Equal(t, want, AlignUp(in))
	}
}

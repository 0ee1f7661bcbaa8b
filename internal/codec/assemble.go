package codec

// Assemble lays out a complete DTB: header | rsv-map (zero-terminated) |
// struct block | strings block, per spec.md §4.1's write contract, and
// returns the 4-byte-aligned buffer.
func Assemble(bootCPUIDPhys uint32, rsvs []MemoryReservation, structBlock, stringsBlock []byte) []byte {
	const off0 = HeaderSize

	rsvBlock := EncodeReservations(nil, rsvs)
	offStruct := off0 + len(rsvBlock)
	offStrings := offStruct + len(structBlock)
	total := offStrings + len(stringsBlock)
	total = AlignUp(total)

	buf := make([]byte, total)

	h := Header{
		TotalSize:       uint32(total),
		OffDtStruct:     uint32(offStruct),
		OffDtStrings:    uint32(offStrings),
		OffMemRsvmap:    uint32(off0),
		Version:         Version,
		LastCompVersion: LastCompVersion,
		BootCPUIDPhys:   bootCPUIDPhys,
		SizeDtStrings:   uint32(len(stringsBlock)),
		SizeDtStruct:    uint32(len(structBlock)),
	}
	EncodeHeader(buf[:HeaderSize], h)

	copy(buf[off0:], rsvBlock)
	copy(buf[offStruct:], structBlock)
	copy(buf[offStrings:], stringsBlock)

	return buf
}

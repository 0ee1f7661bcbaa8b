package fdt

// MemoryReservation is one entry of the memory-reservation block: a
// physical address range the kernel must treat as pre-excluded (spec.md
// §3).
type MemoryReservation struct {
	Address uint64
	Size    uint64
}

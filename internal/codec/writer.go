package codec

// StringTable interns property names in first-encounter order and tracks
// their byte offsets into the eventual strings block. Ordering is not
// normative (spec.md §9: "string-block determinism" — compare via dtc, not
// byte-equality), only position-stability within one emission matters.
type StringTable struct {
	buf    []byte
	offset map[string]uint32
}

// NewStringTable returns an empty interner.
func NewStringTable() *StringTable {
	return &StringTable{offset: make(map[string]uint32)}
}

// Intern returns the byte offset of name in the strings block, appending it
// (NUL-terminated) on first occurrence.
func (s *StringTable) Intern(name string) uint32 {
	if off, ok := s.offset[name]; ok {
		return off
	}
	off := uint32(len(s.buf))
	s.buf = append(s.buf, name...)
	s.buf = append(s.buf, 0)
	s.offset[name] = off
	return off
}

// Bytes returns the assembled strings block.
func (s *StringTable) Bytes() []byte { return s.buf }

// Writer assembles the structure-block token stream. Node names and
// property payloads are padded to a 4-byte boundary per spec.md §4.1.
type Writer struct {
	buf     []byte
	strings *StringTable
}

// NewWriter returns a structure-block writer that interns property names
// into strings.
func NewWriter(strings *StringTable) *Writer {
	return &Writer{strings: strings}
}

func (w *Writer) putU32(v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) pad() {
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
}

// BeginNode emits BEGIN_NODE for name.
func (w *Writer) BeginNode(name string) {
	w.putU32(TokenBeginNode)
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, 0)
	w.pad()
}

// EndNode emits END_NODE.
func (w *Writer) EndNode() {
	w.putU32(TokenEndNode)
}

// Prop emits a PROP token for (name, data), interning name into the shared
// string table.
func (w *Writer) Prop(name string, data []byte) {
	w.putU32(TokenProp)
	w.putU32(uint32(len(data)))
	w.putU32(w.strings.Intern(name))
	w.buf = append(w.buf, data...)
	w.pad()
}

// End emits the terminating END token.
func (w *Writer) End() {
	w.putU32(TokenEnd)
}

// Bytes returns the assembled structure block.
func (w *Writer) Bytes() []byte { return w.buf }

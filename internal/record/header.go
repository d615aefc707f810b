// Package record implements the WPILOG wire format: the bit-packed record
// header, the typed payload encodings, and the control-record payloads used
// by the entry registry (Start/Finish/SetMetadata).
//
// All multi-byte integers are little-endian regardless of host byte order.
package record

import (
	"github.com/BlueZeeKing/allwpilib/internal/encoding"
)

// MaxHeaderSize is the largest a record header can be: 1 lead byte, two
// 4-byte fields (entry id, payload length), and an 8-byte timestamp.
const MaxHeaderSize = 1 + 4 + 4 + 8

// FileMagic is the 6-byte magic string at the start of every WPILOG file.
var FileMagic = [6]byte{'W', 'P', 'I', 'L', 'O', 'G'}

// FileVersion is the 2-byte version field written after the magic.
var FileVersion = [2]byte{0x00, 0x01}

// minWidth returns the number of bytes needed to hold v in a little-endian
// minimal-width encoding, clamped to the entry id/payload length fields'
// 1..4 byte range. Those two fields are constructed so the clamp is never
// lossy in practice: entry ids and payload lengths stay well under 2^32.
func minWidth(v uint64) int {
	w := 1
	for v>>(8*uint(w)) != 0 && w < 4 {
		w++
	}
	return w
}

// minWidthTS is minWidth's counterpart for the timestamp field, which gets
// a full 1..8 byte range since microsecond timestamps (uptime or
// epoch-relative) commonly exceed 2^32.
func minWidthTS(v uint64) int {
	w := 1
	for v>>(8*uint(w)) != 0 && w < 8 {
		w++
	}
	return w
}

// writeMinWidth writes the low w bytes of v, little-endian, into dst.
// REQUIRES: len(dst) >= w.
func writeMinWidth(dst []byte, v uint64, w int) {
	var buf [8]byte
	encoding.EncodeFixed64(buf[:], v)
	copy(dst, buf[:w])
}

// readMinWidth reads a w-byte little-endian unsigned integer from src.
// REQUIRES: len(src) >= w.
func readMinWidth(src []byte, w int) uint64 {
	var buf [8]byte
	copy(buf[:w], src[:w])
	return encoding.DecodeFixed64(buf[:])
}

// Header describes one record's framing fields, decoded from or destined
// for the lead byte and the three minimum-width integers that follow it.
type Header struct {
	EntryID     uint32
	PayloadLen  uint32
	TimestampUs uint64
}

// Encode writes h's header bytes to dst and returns the number of bytes
// written: 4..17, depending on the minimal widths of EntryID, PayloadLen
// (1..4 bytes each) and TimestampUs (1..8 bytes).
func (h Header) Encode(dst []byte) int {
	idW := minWidth(uint64(h.EntryID))
	lenW := minWidth(uint64(h.PayloadLen))
	tsW := minWidthTS(h.TimestampUs)

	dst[0] = byte((tsW-1)&0x7)<<4 | byte((lenW-1)&0x3)<<2 | byte(idW-1)&0x3
	off := 1
	writeMinWidth(dst[off:], uint64(h.EntryID), idW)
	off += idW
	writeMinWidth(dst[off:], uint64(h.PayloadLen), lenW)
	off += lenW
	writeMinWidth(dst[off:], h.TimestampUs, tsW)
	off += tsW
	return off
}

// Size returns the number of bytes Encode would write for h, without
// writing anything.
func (h Header) Size() int {
	return 1 + minWidth(uint64(h.EntryID)) + minWidth(uint64(h.PayloadLen)) + minWidthTS(h.TimestampUs)
}

// EncodeFileHeader returns the 12-byte-plus-extra file header: magic,
// version, little-endian extra-header length, then extraHeader itself.
func EncodeFileHeader(extraHeader []byte) []byte {
	buf := make([]byte, 0, 12+len(extraHeader))
	buf = append(buf, FileMagic[:]...)
	buf = append(buf, FileVersion[:]...)
	buf = encoding.AppendFixed32(buf, uint32(len(extraHeader)))
	buf = append(buf, extraHeader...)
	return buf
}

// DecodeHeader parses a header from src, returning the decoded fields and
// the number of bytes consumed. Used only by tests verifying round-trip
// properties; the product surface never reads its own output back.
func DecodeHeader(src []byte) (h Header, n int, ok bool) {
	if len(src) < 1 {
		return Header{}, 0, false
	}
	lead := src[0]
	idW := int(lead&0x3) + 1
	lenW := int((lead>>2)&0x3) + 1
	tsW := int((lead>>4)&0x7) + 1
	need := 1 + idW + lenW + tsW
	if len(src) < need {
		return Header{}, 0, false
	}
	off := 1
	entryID := readMinWidth(src[off:], idW)
	off += idW
	payloadLen := readMinWidth(src[off:], lenW)
	off += lenW
	ts := readMinWidth(src[off:], tsW)
	off += tsW
	return Header{
		EntryID:     uint32(entryID),
		PayloadLen:  uint32(payloadLen),
		TimestampUs: ts,
	}, off, true
}

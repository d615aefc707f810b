package record

import "github.com/BlueZeeKing/allwpilib/internal/encoding"

// Control type bytes, the first payload byte of any record with entry id 0.
const (
	ControlStart       byte = 0x00
	ControlFinish      byte = 0x01
	ControlSetMetadata byte = 0x02
)

func appendLengthPrefixedString(dst []byte, s string) []byte {
	dst = encoding.AppendFixed32(dst, uint32(len(s)))
	return append(dst, s...)
}

// EncodeStart returns the payload for a Start control record: control byte,
// u32 entry id, then the name/type/metadata strings, each length-prefixed.
func EncodeStart(entryID uint32, name, typ, metadata string) []byte {
	size := 1 + 4 + 4 + len(name) + 4 + len(typ) + 4 + len(metadata)
	buf := make([]byte, 0, size)
	buf = append(buf, ControlStart)
	buf = encoding.AppendFixed32(buf, entryID)
	buf = appendLengthPrefixedString(buf, name)
	buf = appendLengthPrefixedString(buf, typ)
	buf = appendLengthPrefixedString(buf, metadata)
	return buf
}

// EncodeFinish returns the payload for a Finish control record: control
// byte, then u32 entry id.
func EncodeFinish(entryID uint32) []byte {
	buf := make([]byte, 0, 5)
	buf = append(buf, ControlFinish)
	buf = encoding.AppendFixed32(buf, entryID)
	return buf
}

// EncodeSetMetadata returns the payload for a SetMetadata control record:
// control byte, u32 entry id, then one length-prefixed metadata string.
func EncodeSetMetadata(entryID uint32, metadata string) []byte {
	buf := make([]byte, 0, 1+4+4+len(metadata))
	buf = append(buf, ControlSetMetadata)
	buf = encoding.AppendFixed32(buf, entryID)
	buf = appendLengthPrefixedString(buf, metadata)
	return buf
}

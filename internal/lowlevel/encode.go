package lowlevel

import "encoding/binary"

func putU32(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

func putU64(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf, v)
}

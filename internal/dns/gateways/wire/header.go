package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// headerSize is the fixed length, in bytes, of a DNS message header.
const headerSize = 12

// decodeHeader parses the 12-byte fixed header at the start of data.
func decodeHeader(data []byte) (domain.Header, error) {
	if len(data) < headerSize {
		return domain.Header{}, fmt.Errorf("%w: header requires %d bytes, got %d", domain.ErrShortBuffer, headerSize, len(data))
	}

	flags := binary.BigEndian.Uint16(data[2:4])

	return domain.Header{
		ID:      binary.BigEndian.Uint16(data[0:2]),
		QR:      flags&0x8000 != 0,
		Opcode:  uint8(flags>>11) & 0x0F,
		AA:      flags&0x0400 != 0,
		TC:      flags&0x0200 != 0,
		RD:      flags&0x0100 != 0,
		RA:      flags&0x0080 != 0,
		Z:       uint8(flags>>4) & 0x07,
		RCode:   domain.RCode(flags & 0x000F),
		QDCount: binary.BigEndian.Uint16(data[4:6]),
		ANCount: binary.BigEndian.Uint16(data[6:8]),
		NSCount: binary.BigEndian.Uint16(data[8:10]),
		ARCount: binary.BigEndian.Uint16(data[10:12]),
	}, nil
}

// encodeHeader writes h's 12-byte wire representation.
func encodeHeader(h domain.Header) []byte {
	buf := make([]byte, headerSize)

	binary.BigEndian.PutUint16(buf[0:2], h.ID)

	var flags uint16
	if h.QR {
		flags |= 0x8000
	}
	flags |= uint16(h.Opcode&0x0F) << 11
	if h.AA {
		flags |= 0x0400
	}
	if h.TC {
		flags |= 0x0200
	}
	if h.RD {
		flags |= 0x0100
	}
	if h.RA {
		flags |= 0x0080
	}
	flags |= uint16(h.Z&0x07) << 4
	flags |= uint16(h.RCode) & 0x000F
	binary.BigEndian.PutUint16(buf[2:4], flags)

	binary.BigEndian.PutUint16(buf[4:6], h.QDCount)
	binary.BigEndian.PutUint16(buf[6:8], h.ANCount)
	binary.BigEndian.PutUint16(buf[8:10], h.NSCount)
	binary.BigEndian.PutUint16(buf[10:12], h.ARCount)

	return buf
}

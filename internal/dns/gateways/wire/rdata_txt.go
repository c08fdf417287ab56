package wire

import (
	"bytes"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeTXT(raw []byte) (domain.TXT, error) {
	var segments [][]byte
	pos := 0
	for pos < len(raw) {
		length := int(raw[pos])
		pos++
		if pos+length > len(raw) {
			return domain.TXT{}, fmt.Errorf("%w: TXT segment runs past rdlength", domain.ErrInvalidRdataLength)
		}
		seg := make([]byte, length)
		copy(seg, raw[pos:pos+length])
		segments = append(segments, seg)
		pos += length
	}
	return domain.TXT{Segments: segments}, nil
}

func encodeTXTData(t domain.TXT) []byte {
	var buf bytes.Buffer
	for _, seg := range t.Segments {
		// Longer segments are split across multiple 255-byte
		// character-strings rather than rejected.
		for len(seg) > 255 {
			buf.WriteByte(255)
			buf.Write(seg[:255])
			seg = seg[255:]
		}
		buf.WriteByte(byte(len(seg)))
		buf.Write(seg)
	}
	return buf.Bytes()
}

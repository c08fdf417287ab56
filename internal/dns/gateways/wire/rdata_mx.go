package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeMX(data []byte, offset int) (domain.MX, error) {
	if offset+2 > len(data) {
		return domain.MX{}, fmt.Errorf("%w: MX record truncated", domain.ErrShortBuffer)
	}
	pref := binary.BigEndian.Uint16(data[offset : offset+2])
	exchange, _, err := decodeName(data, offset+2)
	if err != nil {
		return domain.MX{}, err
	}
	return domain.MX{Preference: pref, Exchange: exchange}, nil
}

func encodeMXData(mx domain.MX, offsets offsetMap, pos int) ([]byte, error) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, mx.Preference)
	if err := encodeName(&buf, mx.Exchange, offsets, pos+2); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

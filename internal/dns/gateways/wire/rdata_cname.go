package wire

import (
	"bytes"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeCNAME(data []byte, offset int) (domain.CNAME, error) {
	target, _, err := decodeName(data, offset)
	if err != nil {
		return domain.CNAME{}, err
	}
	return domain.CNAME{Target: target}, nil
}

func encodeCNAMEData(c domain.CNAME, offsets offsetMap, pos int) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeName(&buf, c.Target, offsets, pos); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package wire

import (
	"bytes"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeNS(data []byte, offset int) (domain.NS, error) {
	target, _, err := decodeName(data, offset)
	if err != nil {
		return domain.NS{}, err
	}
	return domain.NS{Target: target}, nil
}

func encodeNSData(ns domain.NS, offsets offsetMap, pos int) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeName(&buf, ns.Target, offsets, pos); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package wire

import (
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeAAAA(raw []byte) (domain.AAAA, error) {
	if len(raw) != 16 {
		return domain.AAAA{}, fmt.Errorf("%w: AAAA record requires 16 bytes, got %d", domain.ErrInvalidRdataLength, len(raw))
	}
	var a domain.AAAA
	copy(a.Address[:], raw)
	return a, nil
}

func encodeAAAA(a domain.AAAA) []byte {
	out := make([]byte, 16)
	copy(out, a.Address[:])
	return out
}

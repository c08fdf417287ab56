package wire

import (
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeA(raw []byte) (domain.A, error) {
	if len(raw) != 4 {
		return domain.A{}, fmt.Errorf("%w: A record requires 4 bytes, got %d", domain.ErrInvalidRdataLength, len(raw))
	}
	var a domain.A
	copy(a.Address[:], raw)
	return a, nil
}

func encodeA(a domain.A) []byte {
	out := make([]byte, 4)
	copy(out, a.Address[:])
	return out
}

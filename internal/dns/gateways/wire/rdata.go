package wire

import (
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// decodeRData parses the rdlength bytes of RDATA starting at offset in
// data, dispatching on rtype. The full message is passed (not just the
// rdata slice) because name-bearing RDATA types may contain compression
// pointers back into earlier parts of the message.
func decodeRData(rtype domain.RRType, data []byte, offset, rdlength int) (domain.RData, error) {
	if offset+rdlength > len(data) {
		return nil, fmt.Errorf("%w: rdata runs past end of message", domain.ErrShortBuffer)
	}
	raw := data[offset : offset+rdlength]

	switch rtype {
	case domain.RRTypeA:
		return decodeA(raw)
	case domain.RRTypeAAAA:
		return decodeAAAA(raw)
	case domain.RRTypeNS:
		return decodeNS(data, offset)
	case domain.RRTypeCNAME:
		return decodeCNAME(data, offset)
	case domain.RRTypeSOA:
		return decodeSOA(data, offset, rdlength)
	case domain.RRTypeMX:
		return decodeMX(data, offset)
	case domain.RRTypeTXT:
		return decodeTXT(raw)
	default:
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return domain.Unknown{RRT: rtype, Raw: cp}, nil
	}
}

// encodeRData writes rd's wire representation at wire position pos (the
// byte offset in the final message where it will begin), compressing any
// embedded names against offsets.
func encodeRData(rd domain.RData, offsets offsetMap, pos int) ([]byte, error) {
	switch v := rd.(type) {
	case domain.A:
		return encodeA(v), nil
	case domain.AAAA:
		return encodeAAAA(v), nil
	case domain.NS:
		return encodeNSData(v, offsets, pos)
	case domain.CNAME:
		return encodeCNAMEData(v, offsets, pos)
	case domain.SOA:
		return encodeSOAData(v, offsets, pos)
	case domain.MX:
		return encodeMXData(v, offsets, pos)
	case domain.TXT:
		return encodeTXTData(v), nil
	case domain.Unknown:
		return v.Raw, nil
	default:
		return nil, fmt.Errorf("wire: no encoder registered for RData type %T", rd)
	}
}

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func decodeSOA(data []byte, offset, rdlength int) (domain.SOA, error) {
	end := offset + rdlength

	mname, pos, err := decodeName(data, offset)
	if err != nil {
		return domain.SOA{}, err
	}
	rname, pos, err := decodeName(data, pos)
	if err != nil {
		return domain.SOA{}, err
	}
	if pos+20 > len(data) {
		return domain.SOA{}, fmt.Errorf("%w: SOA record truncated", domain.ErrShortBuffer)
	}
	if pos+20 > end {
		return domain.SOA{}, fmt.Errorf("%w: SOA fields run past rdlength", domain.ErrInvalidRdataLength)
	}
	return domain.SOA{
		MName:   mname,
		RName:   rname,
		Serial:  binary.BigEndian.Uint32(data[pos : pos+4]),
		Refresh: binary.BigEndian.Uint32(data[pos+4 : pos+8]),
		Retry:   binary.BigEndian.Uint32(data[pos+8 : pos+12]),
		Expire:  binary.BigEndian.Uint32(data[pos+12 : pos+16]),
		Minimum: binary.BigEndian.Uint32(data[pos+16 : pos+20]),
	}, nil
}

func encodeSOAData(s domain.SOA, offsets offsetMap, pos int) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeName(&buf, s.MName, offsets, pos); err != nil {
		return nil, err
	}
	if err := encodeName(&buf, s.RName, offsets, pos+buf.Len()); err != nil {
		return nil, err
	}
	_ = binary.Write(&buf, binary.BigEndian, s.Serial)
	_ = binary.Write(&buf, binary.BigEndian, s.Refresh)
	_ = binary.Write(&buf, binary.BigEndian, s.Retry)
	_ = binary.Write(&buf, binary.BigEndian, s.Expire)
	_ = binary.Write(&buf, binary.BigEndian, s.Minimum)
	return buf.Bytes(), nil
}

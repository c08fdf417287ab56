package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// decodeRecord reads a single resource record starting at offset,
// returning the decoded Record and the offset following it.
func decodeRecord(data []byte, offset int) (domain.Record, int, error) {
	name, pos, err := decodeName(data, offset)
	if err != nil {
		return domain.Record{}, 0, err
	}
	if pos+10 > len(data) {
		return domain.Record{}, 0, fmt.Errorf("%w: truncated record header", domain.ErrShortBuffer)
	}

	rtype := domain.RRType(binary.BigEndian.Uint16(data[pos : pos+2]))
	rclass := domain.RRClass(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
	ttl := binary.BigEndian.Uint32(data[pos+4 : pos+8])
	rdlength := binary.BigEndian.Uint16(data[pos+8 : pos+10])
	pos += 10

	rdata, err := decodeRData(rtype, data, pos, int(rdlength))
	if err != nil {
		return domain.Record{}, 0, fmt.Errorf("decoding rdata for %s %s: %w", name, rtype, err)
	}
	pos += int(rdlength)

	return domain.Record{
		Name:     name,
		Type:     rtype,
		Class:    rclass,
		TTL:      ttl,
		RDLength: rdlength,
		RData:    rdata,
	}, pos, nil
}

// encodeRecord appends rec's wire representation to buf, which already
// holds wirePos bytes of the message under construction. The rdlength
// field is back-patched after the RDATA is serialized, since compression
// inside the RDATA (an NS or CNAME target, say) can make its encoded size
// differ from rec.RDLength.
func encodeRecord(buf *bytes.Buffer, rec domain.Record, offsets offsetMap, wirePos int) error {
	start := buf.Len()
	if err := encodeName(buf, rec.Name, offsets, wirePos); err != nil {
		return err
	}
	_ = binary.Write(buf, binary.BigEndian, uint16(rec.Type))
	_ = binary.Write(buf, binary.BigEndian, uint16(rec.Class))
	_ = binary.Write(buf, binary.BigEndian, rec.TTL)

	rdlengthOffset := buf.Len()
	_ = binary.Write(buf, binary.BigEndian, uint16(0)) // placeholder, patched below

	rdataPos := wirePos + (buf.Len() - start)
	rdata, err := encodeRData(rec.RData, offsets, rdataPos)
	if err != nil {
		return fmt.Errorf("encoding rdata for %s %s: %w", rec.Name, rec.Type, err)
	}
	buf.Write(rdata)

	if len(rdata) > 0xFFFF {
		return fmt.Errorf("%w: rdata too large (%d bytes)", domain.ErrInvalidRdataLength, len(rdata))
	}
	raw := buf.Bytes()
	binary.BigEndian.PutUint16(raw[rdlengthOffset:rdlengthOffset+2], uint16(len(rdata)))

	return nil
}

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// decodeQuestion reads a single question section entry starting at
// offset, returning the decoded Question and the offset of the byte
// following it. Per RFC 1035, the type and class values are not
// validated here -- an unrecognized value still decodes cleanly.
func decodeQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, pos, err := decodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if pos+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: truncated question", domain.ErrShortBuffer)
	}
	qtype := binary.BigEndian.Uint16(data[pos : pos+2])
	qclass := binary.BigEndian.Uint16(data[pos+2 : pos+4])
	return domain.Question{
		Name:  name,
		Type:  domain.RRType(qtype),
		Class: domain.RRClass(qclass),
	}, pos + 4, nil
}

// encodeQuestion appends q's wire representation to buf, compressing its
// name against offsets.
func encodeQuestion(buf *bytes.Buffer, q domain.Question, offsets offsetMap, pos int) error {
	if err := encodeName(buf, q.Name, offsets, pos); err != nil {
		return err
	}
	_ = binary.Write(buf, binary.BigEndian, uint16(q.Type))
	_ = binary.Write(buf, binary.BigEndian, uint16(q.Class))
	return nil
}

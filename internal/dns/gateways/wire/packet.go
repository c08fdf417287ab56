package wire

import (
	"bytes"
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// DecodePacket parses a complete DNS message. Trailing bytes after the
// last declared section are ignored, matching how real resolvers tolerate
// padding added by some transports.
func DecodePacket(data []byte) (domain.Packet, error) {
	header, err := decodeHeader(data)
	if err != nil {
		return domain.Packet{}, err
	}

	offset := headerSize

	questions := make([]domain.Question, 0, header.QDCount)
	for i := 0; i < int(header.QDCount); i++ {
		q, next, err := decodeQuestion(data, offset)
		if err != nil {
			return domain.Packet{}, fmt.Errorf("decoding question %d: %w", i, err)
		}
		questions = append(questions, q)
		offset = next
	}

	answers, offset, err := decodeRecords(data, offset, int(header.ANCount))
	if err != nil {
		return domain.Packet{}, fmt.Errorf("decoding answer section: %w", err)
	}
	authority, offset, err := decodeRecords(data, offset, int(header.NSCount))
	if err != nil {
		return domain.Packet{}, fmt.Errorf("decoding authority section: %w", err)
	}
	additional, _, err := decodeRecords(data, offset, int(header.ARCount))
	if err != nil {
		return domain.Packet{}, fmt.Errorf("decoding additional section: %w", err)
	}

	return domain.Packet{
		Header:     header,
		Questions:  questions,
		Answers:    answers,
		Authority:  authority,
		Additional: additional,
	}, nil
}

func decodeRecords(data []byte, offset, count int) ([]domain.Record, int, error) {
	records := make([]domain.Record, 0, count)
	for i := 0; i < count; i++ {
		rec, next, err := decodeRecord(data, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
		offset = next
	}
	return records, offset, nil
}

// EncodePacket serializes a complete DNS message, compressing names
// across the question and all three record sections against a single
// shared offset table. The header's section counts are derived from the
// slices rather than trusted from p.Header, so a caller never has to keep
// them in sync by hand.
func EncodePacket(p domain.Packet) ([]byte, error) {
	if len(p.Questions) > 0xFFFF || len(p.Answers) > 0xFFFF || len(p.Authority) > 0xFFFF || len(p.Additional) > 0xFFFF {
		return nil, fmt.Errorf("%w: section too large to encode", domain.ErrInvalidRdataLength)
	}

	h := p.Header
	h.QDCount = uint16(len(p.Questions))
	h.ANCount = uint16(len(p.Answers))
	h.NSCount = uint16(len(p.Authority))
	h.ARCount = uint16(len(p.Additional))

	var buf bytes.Buffer
	buf.Write(encodeHeader(h))

	offsets := newOffsetMap()

	for _, q := range p.Questions {
		if err := encodeQuestion(&buf, q, offsets, buf.Len()); err != nil {
			return nil, fmt.Errorf("encoding question: %w", err)
		}
	}
	for i, rec := range p.Answers {
		if err := encodeRecord(&buf, rec, offsets, buf.Len()); err != nil {
			return nil, fmt.Errorf("encoding answer %d: %w", i, err)
		}
	}
	for i, rec := range p.Authority {
		if err := encodeRecord(&buf, rec, offsets, buf.Len()); err != nil {
			return nil, fmt.Errorf("encoding authority record %d: %w", i, err)
		}
	}
	for i, rec := range p.Additional {
		if err := encodeRecord(&buf, rec, offsets, buf.Len()); err != nil {
			return nil, fmt.Errorf("encoding additional record %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

package wire

import (
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/common/log"
	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// Codec wraps the stateless Encode/DecodePacket functions with structured
// logging, so the transport and upstream layers can observe wire-level
// activity without each re-deriving what happened from a raw byte count.
type Codec struct {
	logger log.Logger
}

// NewCodec returns a Codec that logs through logger.
func NewCodec(logger log.Logger) *Codec {
	return &Codec{logger: logger}
}

// Decode parses data into a Packet.
func (c *Codec) Decode(data []byte) (domain.Packet, error) {
	p, err := DecodePacket(data)
	if err != nil {
		c.logger.Debug(map[string]any{
			"error": err,
			"bytes": len(data),
		}, "failed to decode DNS packet")
		return domain.Packet{}, err
	}
	c.logger.Debug(map[string]any{
		"id":         p.Header.ID,
		"qr":         p.Header.QR,
		"rcode":      p.Header.RCode.String(),
		"questions":  len(p.Questions),
		"answers":    len(p.Answers),
		"authority":  len(p.Authority),
		"additional": len(p.Additional),
	}, "decoded DNS packet")
	return p, nil
}

// Encode serializes p.
func (c *Codec) Encode(p domain.Packet) ([]byte, error) {
	data, err := EncodePacket(p)
	if err != nil {
		c.logger.Debug(map[string]any{"error": err, "id": p.Header.ID}, "failed to encode DNS packet")
		return nil, fmt.Errorf("encode packet: %w", err)
	}
	c.logger.Debug(map[string]any{"id": p.Header.ID, "bytes": len(data)}, "encoded DNS packet")
	return data, nil
}

package resolver

import (
	"context"
	"net"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// Upstream performs a single round-trip query against a single name
// server. The referral-chasing walk across servers lives entirely in
// Resolver; Upstream only knows how to ask one server one question.
type Upstream interface {
	Query(ctx context.Context, server string, query domain.Packet) (domain.Packet, error)
}

// Handler processes a query packet received by a transport and returns
// the packet to send back to the client. Implementations see only domain
// objects; wire encoding and socket details stay in the transport.
type Handler interface {
	HandleQuery(ctx context.Context, query *domain.Packet, clientAddr net.Addr) *domain.Packet
}

package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/nyxdns/recurdns/internal/dns/common/log"
	"github.com/nyxdns/recurdns/internal/dns/domain"
	"github.com/nyxdns/recurdns/internal/dns/gateways/wire"
	"github.com/nyxdns/recurdns/internal/dns/services/resolver"
)

// maxUDPPacketSize is the standard DNS-over-UDP message size limit absent
// EDNS(0), which this resolver does not implement.
const maxUDPPacketSize = 512

// UDPTransport serves DNS over UDP (RFC 1035). It handles socket binding,
// datagram reception/transmission, and wire format conversion, and
// delegates query resolution to a resolver.Handler.
type UDPTransport struct {
	addr   string
	conn   *net.UDPConn
	codec  *wire.Codec
	logger log.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
}

// NewUDPTransport creates a new UDP transport instance.
func NewUDPTransport(addr string, codec *wire.Codec, logger log.Logger) *UDPTransport {
	return &UDPTransport{
		addr:   addr,
		codec:  codec,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start binds the UDP socket and begins the accept loop in a background
// goroutine.
func (t *UDPTransport) Start(ctx context.Context, handler resolver.Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("UDP transport already running")
	}

	udpAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address %s: %w", t.addr, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", t.addr, err)
	}

	t.conn = conn
	t.running = true

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   t.addr,
	}, "DNS transport started")

	go t.listenLoop(ctx, handler)

	return nil
}

// Stop gracefully shuts down the UDP transport.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	close(t.stopCh)

	var closeErr error
	if t.conn != nil {
		closeErr = t.conn.Close()
		if closeErr != nil {
			t.logger.Warn(map[string]any{
				"error": closeErr.Error(),
			}, "Error closing UDP connection")
		}
	}

	t.running = false

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   t.addr,
	}, "DNS transport stopped")

	return closeErr
}

// Address returns the network address the transport is bound to.
func (t *UDPTransport) Address() string {
	return t.addr
}

// listenLoop continuously reads UDP datagrams and hands each off to
// handlePacket in its own goroutine, so one slow resolution does not
// stall the next incoming query.
func (t *UDPTransport) listenLoop(ctx context.Context, handler resolver.Handler) {
	buffer := make([]byte, maxUDPPacketSize)

	for {
		select {
		case <-ctx.Done():
			t.logger.Debug(nil, "UDP transport stopping due to context cancellation")
			return
		case <-t.stopCh:
			t.logger.Debug(nil, "UDP transport stopping due to stop signal")
			return
		default:
			n, clientAddr, err := t.conn.ReadFromUDP(buffer)
			if err != nil {
				t.mu.RLock()
				running := t.running
				t.mu.RUnlock()

				if !running {
					return
				}

				t.logger.Warn(map[string]any{
					"error": err.Error(),
				}, "Failed to read UDP packet")
				continue
			}

			packet := make([]byte, n)
			copy(packet, buffer[:n])
			go t.handlePacket(ctx, packet, clientAddr, handler)
		}
	}
}

// handlePacket decodes a single UDP datagram, hands it to handler, and
// writes the encoded response back to the client. A datagram that does not
// decode is answered with a bare FORMERR instead.
func (t *UDPTransport) handlePacket(ctx context.Context, data []byte, clientAddr *net.UDPAddr, handler resolver.Handler) {
	t.logger.Debug(map[string]any{
		"client": clientAddr.String(),
		"size":   len(data),
	}, "received raw DNS query data")

	query, err := t.codec.Decode(data)
	if err != nil {
		t.logger.Warn(map[string]any{
			"client": clientAddr.String(),
			"error":  err.Error(),
			"size":   len(data),
		}, "failed to decode DNS query")
		// Echo the transaction ID when at least its two bytes arrived.
		formErr := domain.Packet{Header: domain.Header{QR: true, RCode: domain.RCodeFormatError}}
		if len(data) >= 2 {
			formErr.Header.ID = uint16(data[0])<<8 | uint16(data[1])
		}
		if out, encErr := t.codec.Encode(formErr); encErr == nil {
			_, _ = t.conn.WriteToUDP(out, clientAddr)
		}
		return
	}

	t.logger.Debug(map[string]any{
		"client":    clientAddr.String(),
		"query_id":  query.Header.ID,
		"questions": len(query.Questions),
	}, "received DNS query")

	response := handler.HandleQuery(ctx, &query, clientAddr)

	responseData, err := t.codec.Encode(*response)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":   clientAddr.String(),
			"query_id": response.Header.ID,
			"error":    err.Error(),
		}, "failed to encode DNS response")
		return
	}

	if _, err := t.conn.WriteToUDP(responseData, clientAddr); err != nil {
		t.logger.Error(map[string]any{
			"client":   clientAddr.String(),
			"query_id": response.Header.ID,
			"error":    err.Error(),
		}, "failed to send DNS response")
		return
	}

	t.logger.Debug(map[string]any{
		"client":   clientAddr.String(),
		"query_id": response.Header.ID,
		"rcode":    response.Header.RCode.String(),
		"answers":  len(response.Answers),
		"size":     len(responseData),
	}, "sent DNS response")
}

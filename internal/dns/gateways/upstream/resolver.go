package upstream

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/nyxdns/recurdns/internal/dns/domain"
	"github.com/nyxdns/recurdns/internal/dns/gateways/wire"
	"github.com/nyxdns/recurdns/internal/dns/services/resolver"
)

// Error message constants for consistent error handling.
const (
	errCodecRequired   = "DNS codec is required"
	errFailedToConnect = "failed to connect: %w"
	errSetDeadline     = "failed to set connection deadline: %w"
	errEncodeFailed    = "encode failed: %w"
	errWriteFailed     = "write failed: %w"
	errReadFailed      = "read failed: %w"
)

// maxUpstreamResponseSize bounds the buffer used to read a name server's
// UDP reply. Unlike the client-facing 512-byte limit in
// gateways/transport, upstream responses are not capped to the
// no-EDNS(0) size: a delegation can legitimately carry several NS and
// glue A records past 512 bytes, so the read buffer is sized well above
// it to avoid silently truncating a legitimate reply.
const maxUpstreamResponseSize = 65535

// Client implements resolver.Upstream by sending a single query packet
// to a single name server over UDP and waiting for its reply. One dial
// happens per Query call: the referral-chasing walk across servers lives
// entirely in services/resolver, which calls Query once per hop.
type Client struct {
	timeout time.Duration
	codec   *wire.Codec
	dial    DialFunc
}

// DialFunc establishes a network connection. It takes a context for
// cancellation, the network type (e.g. "udp"), and the address to
// connect to, returning a net.Conn and an error if any occurs. It exists
// so tests can substitute a fake connection without a real socket.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options configures a Client.
type Options struct {
	// Timeout bounds a single query when ctx carries no deadline of its
	// own.
	Timeout time.Duration

	// Codec is required.
	Codec *wire.Codec

	// Dial overrides connection establishment; nil uses net.Dialer.
	Dial DialFunc
}

// NewClient creates an upstream client with the specified options. It
// returns an error if no codec is provided. The default timeout is 5
// seconds and the default dial function is net.Dialer.DialContext.
func NewClient(opts Options) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf(errCodecRequired)
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Client{
		timeout: opts.Timeout,
		codec:   opts.Codec,
		dial:    opts.Dial,
	}, nil
}

// ensureContextDeadline ensures the context has a deadline, adding the
// client's default timeout if needed. Returns the context (potentially
// with added timeout) and a cancel function if one was created.
func (c *Client) ensureContextDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, nil
}

// Query sends query to server over UDP and returns its decoded response.
// It respects the deadline set in ctx, or applies the client's default
// timeout when ctx carries none.
func (c *Client) Query(ctx context.Context, server string, query domain.Packet) (domain.Packet, error) {
	ctx, cancel := c.ensureContextDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}

	conn, err := c.dial(ctx, "udp", server)
	if err != nil {
		return domain.Packet{}, fmt.Errorf(errFailedToConnect, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return domain.Packet{}, fmt.Errorf(errSetDeadline, err)
		}
	}

	queryBytes, err := c.codec.Encode(query)
	if err != nil {
		return domain.Packet{}, fmt.Errorf(errEncodeFailed, err)
	}

	type result struct {
		response domain.Packet
		err      error
	}
	resultChan := make(chan result, 1)

	go func() {
		if _, err := conn.Write(queryBytes); err != nil {
			resultChan <- result{err: fmt.Errorf(errWriteFailed, err)}
			return
		}

		buffer := make([]byte, maxUpstreamResponseSize)
		n, err := conn.Read(buffer)
		if err != nil {
			resultChan <- result{err: fmt.Errorf(errReadFailed, err)}
			return
		}

		response, err := c.codec.Decode(buffer[:n])
		resultChan <- result{response: response, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return domain.Packet{}, fmt.Errorf("%w: %v", domain.ErrUpstreamIO, res.err)
		}
		return res.response, nil
	case <-ctx.Done():
		return domain.Packet{}, fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, ctx.Err())
	}
}

var _ resolver.Upstream = (*Client)(nil)

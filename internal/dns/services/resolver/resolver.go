package resolver

import (
	"context"
	"net"
	"time"

	"github.com/nyxdns/recurdns/internal/dns/common/clock"
	"github.com/nyxdns/recurdns/internal/dns/common/log"
	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// Default bounds applied when a ResolverOptions field is left at its zero
// value. These mirror config.DEFAULT_APP_CONFIG so a Resolver built
// without going through config.Load still behaves sensibly in tests.
const (
	defaultTimeout           = 2 * time.Second
	defaultMaxIterations     = 16
	defaultMaxRecursionDepth = 8
)

// Resolver walks the DNS referral chain from a fixed bootstrap server down
// to an authoritative answer, rather than forwarding every query to a
// single upstream. It holds no state between calls: each Resolve starts
// over at the bootstrap server.
type Resolver struct {
	logger   log.Logger
	upstream Upstream
	clock    clock.Clock

	bootstrapServer   string
	timeout           time.Duration
	retryCount        int
	maxIterations     int
	maxRecursionDepth int
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	Logger   log.Logger
	Upstream Upstream

	// Clock provides "now" for hop-duration logging. Defaults to
	// clock.RealClock{}; tests substitute clock.MockClock for deterministic
	// timestamps.
	Clock clock.Clock

	// BootstrapServer is the fixed "addr:port" name server every
	// resolution walk begins from.
	BootstrapServer string

	// Timeout bounds a single per-hop query.
	Timeout time.Duration

	// RetryCount is the number of additional attempts made against the
	// current hop before the resolver gives up on it.
	RetryCount int

	// MaxIterations bounds the number of referral hops a single Resolve
	// call may walk.
	MaxIterations int

	// MaxRecursionDepth bounds the nesting depth of glue-less delegation
	// lookups.
	MaxRecursionDepth int
}

// NewResolver constructs a Resolver from opts, applying package defaults
// for any bound left at its zero value.
func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}
	if opts.MaxRecursionDepth <= 0 {
		opts.MaxRecursionDepth = defaultMaxRecursionDepth
	}
	return &Resolver{
		logger:            opts.Logger,
		upstream:          opts.Upstream,
		clock:             opts.Clock,
		bootstrapServer:   opts.BootstrapServer,
		timeout:           opts.Timeout,
		retryCount:        opts.RetryCount,
		maxIterations:     opts.MaxIterations,
		maxRecursionDepth: opts.MaxRecursionDepth,
	}
}

// HandleQuery implements Handler. It resolves the packet's first question
// (any further questions are echoed but not resolved), answers FORMERR when
// there is no question, and translates any resolver error into the
// wire-level error taxonomy: the transport has nothing more useful to do
// with a resolver error than log it, so HandleQuery never returns one.
func (r *Resolver) HandleQuery(ctx context.Context, query *domain.Packet, clientAddr net.Addr) *domain.Packet {
	if len(query.Questions) == 0 {
		r.logger.Warn(map[string]any{
			"client":    clientAddr.String(),
			"questions": len(query.Questions),
		}, "rejecting query with no question")
		return errorResponse(query, domain.RCodeFormatError)
	}

	q := query.Questions[0]
	resp, err := r.Resolve(ctx, q.Name, q.Type, q.Class)
	if err != nil {
		r.logger.Error(map[string]any{
			"client": clientAddr.String(),
			"name":   q.Name,
			"type":   q.Type.String(),
			"error":  err.Error(),
		}, "resolution failed")
		return errorResponse(query, domain.RCodeServerFailure)
	}

	resp.Header.ID = query.Header.ID
	resp.Header.QR = true
	resp.Header.RD = query.Header.RD
	resp.Header.RA = true
	resp.Questions = query.Questions
	resp.Header.QDCount = uint16(len(resp.Questions))
	return &resp
}

// errorResponse builds a response packet carrying rcode and nothing else,
// echoing the client's question and transaction ID.
func errorResponse(query *domain.Packet, rcode domain.RCode) *domain.Packet {
	return &domain.Packet{
		Header: domain.Header{
			ID:      query.Header.ID,
			QR:      true,
			RD:      query.Header.RD,
			RA:      true,
			RCode:   rcode,
			QDCount: query.Header.QDCount,
		},
		Questions: query.Questions,
	}
}

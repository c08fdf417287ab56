package resolver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"

	"github.com/nyxdns/recurdns/internal/dns/common/utils"
	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// Resolve walks the referral chain for (qname, qtype, qclass), starting
// from the bootstrap server, until a hop returns a non-empty answer
// section, a hop returns neither an answer nor a covering NS referral (that
// response is returned as-is), a glue-less delegation exhausts the
// recursion-depth bound, or the iteration bound is reached. It is the resolver's one entry point
// for producing an answer; HandleQuery calls it once per incoming query.
func (r *Resolver) Resolve(ctx context.Context, qname string, qtype domain.RRType, qclass domain.RRClass) (domain.Packet, error) {
	return r.resolve(ctx, qname, qtype, qclass, 0)
}

// resolve is Resolve's recursive core. depth counts glue-less delegation
// lookups nested inside the current call, bounded by maxRecursionDepth;
// it is distinct from the iteration counter below, which bounds the
// number of referral hops walked within a single call.
func (r *Resolver) resolve(ctx context.Context, qname string, qtype domain.RRType, qclass domain.RRClass, depth int) (domain.Packet, error) {
	if depth > r.maxRecursionDepth {
		return domain.Packet{}, fmt.Errorf("%w: recursion depth %d exceeded resolving %s", domain.ErrResolutionExhausted, depth, qname)
	}

	// Built directly rather than through domain.NewQuestion: a query type or
	// class forwarded from the client may legitimately fall outside the
	// closed RRType/RRClass enumerations NewQuestion's Validate checks, and
	// the resolver's only real requirement on the name is that it be
	// canonical.
	if qname == "" {
		return domain.Packet{}, fmt.Errorf("%w: query name must not be empty", domain.ErrMalformedName)
	}
	question := domain.Question{Name: utils.CanonicalDNSName(qname), Type: qtype, Class: qclass}

	server := r.bootstrapServer
	for iteration := 0; iteration < r.maxIterations; iteration++ {
		resp, err := r.queryHop(ctx, server, question)
		if err != nil {
			return domain.Packet{}, fmt.Errorf("hop %d against %s: %w", iteration, server, err)
		}

		if len(resp.Answers) > 0 {
			return resp, nil
		}

		ns, ok := pickReferral(resp, qname)
		if !ok {
			// A terminal response (e.g. NXDOMAIN with an SOA in authority)
			// surfaces to the caller unchanged.
			return resp, nil
		}

		next, err := r.nextServer(ctx, resp, ns, depth)
		if err != nil {
			return domain.Packet{}, err
		}
		server = next

		r.logger.Debug(map[string]any{
			"qname":     qname,
			"qtype":     qtype.String(),
			"iteration": iteration,
			"referral":  ns,
			"server":    server,
		}, "following referral")
	}

	return domain.Packet{}, fmt.Errorf("%w: exceeded %d iterations resolving %s", domain.ErrResolutionExhausted, r.maxIterations, qname)
}

// nextServer resolves a referral's NS target to a dialable "addr:port".
// When the delegating response carries glue (an A record for ns in its
// additional section) that glue is used directly. Otherwise ns itself
// must be resolved, via a nested call one recursion level deeper.
func (r *Resolver) nextServer(ctx context.Context, resp domain.Packet, ns string, depth int) (string, error) {
	if glue, ok := findGlue(resp, ns); ok {
		return net.JoinHostPort(glue.String(), "53"), nil
	}

	nsResp, err := r.resolve(ctx, ns, domain.RRTypeA, domain.RRClassIN, depth+1)
	if err != nil {
		return "", fmt.Errorf("glue-less referral to %s: %w", ns, err)
	}
	addr, ok := firstA(nsResp)
	if !ok {
		return "", fmt.Errorf("%w: glue-less referral to %s produced no address", domain.ErrResolutionExhausted, ns)
	}
	return net.JoinHostPort(addr.String(), "53"), nil
}

// queryHop sends question to server, retrying up to retryCount additional
// times on I/O failure; each attempt is bounded by r.timeout. It does not retry on a well-formed error response
// (e.g. NXDOMAIN): that is a real answer, not a transport failure.
func (r *Resolver) queryHop(ctx context.Context, server string, question domain.Question) (domain.Packet, error) {
	q := domain.NewQueryPacket(uint16(rand.Uint32()), question)

	start := r.clock.Now()
	var lastErr error
	for attempt := 0; attempt <= r.retryCount; attempt++ {
		hopCtx, cancel := context.WithTimeout(ctx, r.timeout)
		resp, err := r.upstream.Query(hopCtx, server, q)
		cancel()
		if err == nil {
			r.logger.Debug(map[string]any{
				"server":   server,
				"name":     question.Name,
				"attempt":  attempt,
				"duration": r.clock.Now().Sub(start).String(),
			}, "hop completed")
			return resp, nil
		}
		lastErr = err
	}
	return domain.Packet{}, lastErr
}

// pickReferral returns the first NS record in resp's authority section
// whose owner name covers qname, along with its target name. A delegating
// response's authority section normally names a single zone cut, so the
// first match is taken without ranking candidates by specificity; ties
// among equally valid NS records are broken by wire order, not retried.
func pickReferral(resp domain.Packet, qname string) (string, bool) {
	for _, rec := range resp.Authority {
		if rec.Type != domain.RRTypeNS {
			continue
		}
		if !domain.IsSubdomainOf(qname, rec.Name) {
			continue
		}
		ns, ok := rec.RData.(domain.NS)
		if !ok {
			continue
		}
		return ns.Target, true
	}
	return "", false
}

// findGlue returns the first A record in resp's additional section whose
// owner name matches ns. As with pickReferral, the first matching glue
// record is used; no attempt is made to try alternates if it turns out to
// be stale.
func findGlue(resp domain.Packet, ns string) (net.IP, bool) {
	for _, rec := range resp.Additional {
		if rec.Type != domain.RRTypeA {
			continue
		}
		if !sameName(rec.Name, ns) {
			continue
		}
		a, ok := rec.RData.(domain.A)
		if !ok {
			continue
		}
		return net.IP(a.Address[:]), true
	}
	return nil, false
}

// sameName reports whether a and b are the same domain name once both are
// reduced to canonical form.
func sameName(a, b string) bool {
	return utils.CanonicalDNSName(a) == utils.CanonicalDNSName(b)
}

// firstA returns the address carried by the first A record in resp's
// answer section, used to turn a glue-less delegation's resolved name
// into a dialable address.
func firstA(resp domain.Packet) (net.IP, bool) {
	for _, rec := range resp.Answers {
		if a, ok := rec.RData.(domain.A); ok {
			return net.IP(a.Address[:]), true
		}
	}
	return nil, false
}

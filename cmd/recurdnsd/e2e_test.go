package main

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nyxdns/recurdns/internal/dns/common/log"
	"github.com/nyxdns/recurdns/internal/dns/config"
	"github.com/nyxdns/recurdns/internal/dns/domain"
	"github.com/nyxdns/recurdns/internal/dns/gateways/wire"
)

// startFakeRoot starts a UDP name server that answers every query directly
// with a single A record, standing in for the bootstrap root server so the
// resolver's referral walk terminates in one hop. It runs until the test
// ends.
func startFakeRoot(t *testing.T) string {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	codec := wire.NewCodec(log.NewNoopLogger())

	go func() {
		buf := make([]byte, 512)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			query, err := codec.Decode(buf[:n])
			if err != nil {
				continue
			}

			resp := domain.Packet{
				Header: domain.Header{
					ID:      query.Header.ID,
					QR:      true,
					RCode:   domain.RCodeNoError,
					QDCount: uint16(len(query.Questions)),
					ANCount: 1,
				},
				Questions: query.Questions,
				Answers: []domain.Record{{
					Name:  query.Questions[0].Name,
					Type:  domain.RRTypeA,
					Class: domain.RRClassIN,
					TTL:   300,
					RData: domain.A{Address: [4]byte{93, 184, 216, 34}},
				}},
			}
			data, err := codec.Encode(resp)
			if err != nil {
				continue
			}
			_, _ = conn.WriteTo(data, addr)
		}
	}()

	return conn.LocalAddr().String()
}

// TestE2E_DNSResolution drives a real UDP query through the full stack:
// transport decodes it, the resolver walks a referral chain rooted at a
// fake bootstrap server, and the answer is encoded back to the client.
func TestE2E_DNSResolution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test in short mode")
	}

	clearEnv(t)
	listenAddr := freeUDPAddr(t)
	require.NoError(t, os.Setenv("DNS_LISTEN_ADDR", listenAddr))
	require.NoError(t, os.Setenv("DNS_RESOLVER_BOOTSTRAP", startFakeRoot(t)))
	defer clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	app, err := buildApplication(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appErr := make(chan error, 1)
	go func() { appErr <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("udp", listenAddr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	q, err := domain.NewQuestion("example.com.", domain.RRTypeA, domain.RRClassIN)
	require.NoError(t, err)
	query := domain.NewQueryPacket(4242, q)
	codec := wire.NewCodec(log.NewNoopLogger())
	queryBytes, err := codec.Encode(query)
	require.NoError(t, err)

	clientConn, err := net.Dial("udp", listenAddr)
	require.NoError(t, err)
	defer clientConn.Close()

	require.NoError(t, clientConn.SetDeadline(time.Now().Add(3*time.Second)))
	_, err = clientConn.Write(queryBytes)
	require.NoError(t, err)

	respBuf := make([]byte, 512)
	n, err := clientConn.Read(respBuf)
	require.NoError(t, err)

	resp, err := codec.Decode(respBuf[:n])
	require.NoError(t, err)
	require.Equal(t, uint16(4242), resp.Header.ID)
	require.True(t, resp.Header.QR)
	require.Equal(t, domain.RCodeNoError, resp.Header.RCode)
	require.Len(t, resp.Answers, 1)

	cancel()
	select {
	case err := <-appErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application failed to shut down within timeout")
	}
}

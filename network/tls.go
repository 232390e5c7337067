package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		}
	})
	return h2Transport
}

var h1Transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLS(ctx, network, addr, []string{"http/1.1"})
	},
}

type fingerprintTransport struct{}

// TLSTransport returns a RoundTripper whose TLS handshakes carry Chrome's
// Client Hello. Many embed hosts sit behind anti-bot walls that reject Go's
// default fingerprint. HTTP/2 is tried first, then HTTP/1.1.
func TLSTransport() http.RoundTripper {
	return fingerprintTransport{}
}

func (fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return h1Transport.RoundTrip(req)
	}

	resp, err := getH2Transport().RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.Body != nil {
		if req.GetBody == nil {
			return nil, fmt.Errorf("h2 failed and body cannot be replayed: %w", err)
		}
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}

	return h1Transport.RoundTrip(retry)
}

// dialTLS opens a TLS connection mimicking Chrome 120. A nil protos keeps
// Chrome's own ALPN list (h2 and http/1.1).
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

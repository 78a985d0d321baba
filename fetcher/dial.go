package fetcher

import (
	"context"
	"net"

	utls "github.com/refraction-networking/utls"
)

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via
// utls. Some sites gate structured-data-rich pages behind TLS fingerprint
// checks; the stock Go ClientHello gets served a challenge page instead of
// the real markup.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := utls.UClient(rawConn, &utls.Config{
		ServerName: host,
	}, utls.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

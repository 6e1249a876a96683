package ratefeed

import (
	"context"
	"net"
	"net/url"
	"time"
)

// ProbeConnectivity reports connectivity by dialing the provider host. It is
// the default ConnectivityChecker; deployments with a platform-level
// online/offline signal inject their own.
type ProbeConnectivity struct {
	host    string
	timeout time.Duration
	dial    func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewProbeConnectivity creates a checker probing the host of providerURL.
func NewProbeConnectivity(providerURL string, timeout time.Duration) *ProbeConnectivity {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	host := "open.er-api.com:443"
	if u, err := url.Parse(providerURL); err == nil && u.Host != "" {
		port := u.Port()
		if port == "" {
			port = "443"
			if u.Scheme == "http" {
				port = "80"
			}
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}
	d := &net.Dialer{Timeout: timeout}
	return &ProbeConnectivity{host: host, timeout: timeout, dial: d.DialContext}
}

// Online dials the provider host and reports whether it is reachable.
func (p *ProbeConnectivity) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	conn, err := p.dial(ctx, "tcp", p.host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// StaticConnectivity is a fixed online/offline signal, useful in tests and
// in deployments that treat the process as always-online.
type StaticConnectivity bool

// Online returns the fixed value.
func (s StaticConnectivity) Online(context.Context) bool { return bool(s) }

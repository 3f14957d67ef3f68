package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP resolves the address a request came from. X-Forwarded-For and
// X-Real-IP are only honored when the connection itself comes from a
// trusted proxy; otherwise the peer address is the client.
//
// A nil *ClientIP trusts no proxy.
type ClientIP struct {
	trusted []netip.Prefix
}

// NewClientIP creates a resolver that trusts forwarding headers set by the
// given proxy networks.
func NewClientIP(trusted []netip.Prefix) *ClientIP {
	return &ClientIP{trusted: trusted}
}

// ParseProxies parses trusted proxy entries. Each entry is either a CIDR
// ("10.0.0.0/8") or a single address ("127.0.0.1").
func ParseProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy network %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// From returns the client address of r.
//
// Behind a trusted proxy, X-Forwarded-For is read from the right: entries
// appended by trusted proxies are skipped and the first untrusted one is the
// client. Anything to its left was supplied by the client and is ignored.
func (c *ClientIP) From(r *http.Request) string {
	peer := peerHost(r.RemoteAddr)
	if !c.trusts(peer) {
		return peer
	}

	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(header, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(hops[i])
		if err != nil {
			// A malformed hop breaks the chain; stop at the last trusted peer.
			return peer
		}
		if !c.trustsAddr(addr) {
			return addr.Unmap().String()
		}
	}
	if len(hops) > 0 {
		// Every hop is a trusted proxy; the first one is the origin.
		return hops[0]
	}

	// X-Real-IP (nginx)
	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.Unmap().String()
	}

	return peer
}

func (c *ClientIP) trusts(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return c.trustsAddr(addr)
}

func (c *ClientIP) trustsAddr(addr netip.Addr) bool {
	if c == nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// peerHost strips the port from a RemoteAddr.
func peerHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return remoteAddr
	}
	return host
}

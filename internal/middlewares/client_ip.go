package middlewares

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP rewrites RemoteAddr to "clientIP:port". Forwarding headers are only honored
// when the direct peer falls inside one of the trusted proxy prefixes; the X-Forwarded-For
// chain is then walked right to left and the first untrusted hop is the client.
func ClientIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, port, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host, port = r.RemoteAddr, "0"
			}

			if peer, err := netip.ParseAddr(host); err == nil {
				client := peer.Unmap()
				if isTrusted(client, trusted) {
					client = forwardedClient(r.Header, client, trusted)
				}
				r.RemoteAddr = net.JoinHostPort(client.String(), port)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func forwardedClient(h http.Header, peer netip.Addr, trusted []netip.Prefix) netip.Addr {
	if xff := h.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			addr = addr.Unmap()
			if !isTrusted(addr, trusted) || i == 0 {
				return addr
			}
		}
	}

	if xri := strings.TrimSpace(h.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.Unmap()
		}
	}

	return peer
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// IPExtractor decides where c.RealIP() takes the client address from.
//
// Without trusted proxies it is always the socket peer, so clients cannot
// pick their own rate limit identity through X-Forwarded-For. With trusted
// proxies, X-Forwarded-For is read only when the peer is one of them, and
// only the listed ranges count as proxies.
func IPExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}

	for _, cidr := range trustedProxies {
		// Config validation rejects malformed ranges.
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(options...)
}

// Package resolve provides the small DNS helpers the orchestrator needs:
// forward resolution for tools that require an IP, and reverse lookup to
// enrich IP targets with a domain.
package resolve

import (
	"context"
	"net"
	"strings"
)

// IsIP reports whether the target is an IP literal.
func IsIP(target string) bool {
	return net.ParseIP(target) != nil
}

// ToIP resolves a hostname to one of its addresses. IP literals pass through.
func ToIP(ctx context.Context, host string) (string, error) {
	if IsIP(host) {
		return host, nil
	}
	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	// Prefer IPv4; most of the tools handle it better.
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			return addr, nil
		}
	}
	return addrs[0], nil
}

// Reverse returns a domain name for an IP, with the trailing dot trimmed.
func Reverse(ctx context.Context, ip string) (string, error) {
	names, err := net.DefaultResolver.LookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		return "", err
	}
	return strings.TrimSuffix(names[0], "."), nil
}

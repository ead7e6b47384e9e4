package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// privateRanges contains all IP ranges the downloader refuses to contact
// unless private networks are explicitly allowed.
var privateRanges []*net.IPNet

func init() {
	blocked := []string{
		"127.0.0.0/8",    // loopback
		"10.0.0.0/8",     // RFC 1918
		"172.16.0.0/12",  // RFC 1918
		"192.168.0.0/16", // RFC 1918
		"169.254.0.0/16", // link-local / cloud metadata
		"100.64.0.0/10",  // CGNAT
		"::1/128",        // IPv6 loopback
		"fc00::/7",       // IPv6 ULA
		"fe80::/10",      // IPv6 link-local
	}
	for _, cidr := range blocked {
		_, network, err := net.ParseCIDR(cidr)
		if err == nil {
			privateRanges = append(privateRanges, network)
		}
	}
}

// PrivateRanges returns the blocked IP networks that IsPrivateIP checks.
func PrivateRanges() []*net.IPNet {
	return privateRanges
}

// IsPrivateIP reports whether ip is loopback, link-local, unspecified or in
// one of the private ranges.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return true
	}
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ValidateImageURL checks that rawURL is an absolute http(s) URL whose
// authority is exactly the one in base, with no userinfo.
func ValidateImageURL(rawURL, base string) error {
	want, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	got, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}
	if !got.IsAbs() || (got.Scheme != "http" && got.Scheme != "https") {
		return fmt.Errorf("invalid image URL scheme %q", got.Scheme)
	}
	if got.User != nil {
		return fmt.Errorf("image URL must not carry userinfo")
	}
	if got.Scheme != want.Scheme || !strings.EqualFold(got.Host, want.Host) {
		return fmt.Errorf("image URL host %q does not match %q", got.Host, want.Host)
	}
	return nil
}

package utils

import (
	"net"
	"testing"
)

// TestPrivateRanges verifies that PrivateRanges initialises without error
// and contains entries for the expected RFC blocks.
func TestPrivateRanges(t *testing.T) {
	ranges := PrivateRanges()
	if len(ranges) == 0 {
		t.Fatal("PrivateRanges() returned empty slice")
	}
	// Spot-check: 10.0.0.1 must be covered.
	ip := []byte{10, 0, 0, 1}
	for _, r := range ranges {
		if r.Contains(ip) {
			return
		}
	}
	t.Error("PrivateRanges() does not contain 10.0.0.0/8")
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"fd00::1", true},
		{"8.8.8.8", false},
		{"204.79.197.200", false},
		{"2620:1ec:c11::200", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.expected {
				t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	const base = "https://www.bing.com"
	tests := []struct {
		name        string
		url         string
		shouldError bool
	}{
		{"same host", "https://www.bing.com/th?id=OHR.Test_ZH-CN123_UHD.jpg", false},
		{"host case differs", "https://WWW.Bing.com/th?id=x_UHD.jpg", false},
		{"userinfo smuggling", "https://www.bing.com@evil.example/x_UHD.jpg", true},
		{"other host", "https://evil.example/x_UHD.jpg", true},
		{"scheme downgrade", "http://www.bing.com/x_UHD.jpg", true},
		{"port added", "https://www.bing.com:8443/x_UHD.jpg", true},
		{"relative", "/th?id=x_UHD.jpg", true},
		{"ftp", "ftp://www.bing.com/x.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageURL(tt.url, base)
			if tt.shouldError && err == nil {
				t.Errorf("ValidateImageURL(%q) should return error", tt.url)
			}
			if !tt.shouldError && err != nil {
				t.Errorf("ValidateImageURL(%q) unexpected error: %v", tt.url, err)
			}
		})
	}
}

func TestIsPrivateIP_CoversPrivateRanges(t *testing.T) {
	for _, r := range PrivateRanges() {
		if !IsPrivateIP(r.IP) {
			t.Errorf("IsPrivateIP(%s) = false for range %s", r.IP, r)
		}
	}
}

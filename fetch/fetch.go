// Package fetch provides the single "get the bytes behind a URL" capability
// used for both the metadata document and the image itself.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bingpaper/config"
	"bingpaper/utils"
)

// Fetcher returns the full response body for url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Func adapts a plain function to Fetcher.
type Func func(ctx context.Context, url string) ([]byte, error)

func (f Func) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// ErrTooLarge is returned when a response body exceeds the configured cap.
var ErrTooLarge = errors.New("response too large")

// Options configures an HTTPFetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64

	InsecureSkipVerify   bool
	AllowPrivateNetworks bool
	ProxyType            string
	ProxyHost            string
	ProxyPort            string
	ProxyUsername        string
	ProxyPassword        string
}

// OptionsFromConfig maps the download and proxy settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		UserAgent:            cfg.UserAgent,
		Timeout:              cfg.Timeout(),
		MaxBytes:             cfg.MaxDownloadBytes(),
		InsecureSkipVerify:   cfg.InsecureSkipVerify,
		AllowPrivateNetworks: cfg.AllowPrivateNetworks,
		ProxyType:            cfg.ProxyType,
		ProxyHost:            cfg.ProxyHost,
		ProxyPort:            cfg.ProxyPort,
		ProxyUsername:        cfg.ProxyUsername,
		ProxyPassword:        cfg.ProxyPassword,
	}
}

// HTTPFetcher is the net/http implementation of Fetcher.
type HTTPFetcher struct {
	client *http.Client
	opts   Options
}

// NewHTTPFetcher builds a fetcher with its own transport.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Transport: newTransport(opts)},
		opts:   opts,
	}
}

func newTransport(opts Options) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	t := &http.Transport{
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify}, //nolint:gosec
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          4,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}
	if !opts.AllowPrivateNetworks {
		// The configured proxy is trusted; it usually listens on loopback or the LAN.
		t.DialContext = (&privateNetDialer{inner: dialer, proxyHost: opts.ProxyHost}).DialContext
	}

	if opts.ProxyHost != "" {
		proxyURL := &url.URL{
			Scheme: opts.ProxyType,
			Host:   opts.ProxyHost,
		}
		if opts.ProxyPort != "" {
			proxyURL.Host = net.JoinHostPort(opts.ProxyHost, opts.ProxyPort)
		}
		if opts.ProxyUsername != "" {
			proxyURL.User = url.UserPassword(opts.ProxyUsername, opts.ProxyPassword)
		}
		t.Proxy = http.ProxyURL(proxyURL)
	}
	return t
}

// privateNetDialer wraps net.Dialer and blocks connections to private/internal
// IPs. Connections to proxyHost are exempt.
type privateNetDialer struct {
	inner     *net.Dialer
	proxyHost string
}

func (d *privateNetDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}
	if d.proxyHost != "" && strings.EqualFold(host, strings.Trim(d.proxyHost, "[]")) {
		return d.inner.DialContext(ctx, network, addr)
	}

	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil || len(ips) == 0 {
		return nil, fmt.Errorf("DNS resolution failed for %s", host)
	}

	for _, ipAddr := range ips {
		if utils.IsPrivateIP(ipAddr.IP) {
			return nil, fmt.Errorf("connection to %s (%s) is blocked", host, ipAddr.IP)
		}
	}

	// Pin to the first resolved IP so a second lookup cannot rebind.
	return d.inner.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
}

// Fetch issues one GET and returns the whole body. Non-200 responses and
// bodies over MaxBytes are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || !parsedURL.IsAbs() || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}

	if f.opts.Timeout > 0 {
		// One context timeout governs the entire download.
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if f.opts.MaxBytes <= 0 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		return body, nil
	}

	if resp.ContentLength > f.opts.MaxBytes {
		return nil, fmt.Errorf("%w: Content-Length %d exceeds %d", ErrTooLarge, resp.ContentLength, f.opts.MaxBytes)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	if int64(len(body)) > f.opts.MaxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, f.opts.MaxBytes)
	}
	return body, nil
}

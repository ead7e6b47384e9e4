// Package bing talks to Bing's image-of-the-day archive endpoint.
package bing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"bingpaper/config"
	"bingpaper/domain"
	"bingpaper/fetch"
	"bingpaper/utils"
)

// Image is one descriptor from the archive response. Only URLBase is needed
// to build the download URL; the rest is informational.
type Image struct {
	URLBase   string `json:"urlbase"`
	URL       string `json:"url"`
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	Title     string `json:"title"`
	Copyright string `json:"copyright"`
}

type archiveResponse struct {
	Images []Image `json:"images"`
}

type Client struct {
	Fetcher    fetch.Fetcher
	Host       string
	Market     string
	Resolution string
}

// NewClient builds a client from the host, market and resolution in cfg.
func NewClient(f fetch.Fetcher, cfg config.Config) *Client {
	return &Client{
		Fetcher:    f,
		Host:       cfg.Host,
		Market:     cfg.Market,
		Resolution: cfg.Resolution,
	}
}

// Endpoint returns the archive URL for today's single image.
func (c *Client) Endpoint() string {
	q := url.Values{}
	q.Set("format", "js")
	q.Set("idx", "0")
	q.Set("n", "1")
	q.Set("mkt", c.Market)
	q.Set("uhd", "1")
	return strings.TrimRight(c.Host, "/") + "/HPImageArchive.aspx?" + q.Encode()
}

// Latest fetches the archive document and returns its first image.
func (c *Client) Latest(ctx context.Context) (Image, error) {
	body, err := c.Fetcher.Fetch(ctx, c.Endpoint())
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", domain.ErrMetadataFetchFailed, err)
	}

	var resp archiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Image{}, fmt.Errorf("%w: decode response: %w", domain.ErrMetadataFetchFailed, err)
	}
	if len(resp.Images) == 0 || strings.TrimSpace(resp.Images[0].URLBase) == "" {
		return Image{}, domain.ErrNoImageData
	}
	return resp.Images[0], nil
}

// ImageURL derives the download URL for img at the client's resolution and
// checks that it still points at the configured host.
func (c *Client) ImageURL(img Image) (string, error) {
	host := strings.TrimRight(c.Host, "/")
	u := host + img.URLBase + "_" + c.Resolution + ".jpg"
	if err := utils.ValidateImageURL(u, host); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMetadataFetchFailed, err)
	}
	return u, nil
}

package bing

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"bingpaper/config"
	"bingpaper/domain"
	"bingpaper/fetch"
)

const sampleResponse = `{
  "images": [
    {
      "startdate": "20231027",
      "enddate": "20231028",
      "url": "/th?id=OHR.AutumnLeaves_ZH-CN1234567890_1920x1080.jpg&rf=LaDigue_1920x1080.jpg&pid=hp",
      "urlbase": "/th?id=OHR.AutumnLeaves_ZH-CN1234567890",
      "copyright": "Autumn leaves (© Someone)",
      "title": "Autumn leaves"
    }
  ],
  "tooltips": {"loading": "..."}
}`

func stubFetcher(body string, err error, calls *[]string) fetch.Fetcher {
	return fetch.Func(func(ctx context.Context, u string) ([]byte, error) {
		*calls = append(*calls, u)
		if err != nil {
			return nil, err
		}
		return []byte(body), nil
	})
}

func TestEndpoint(t *testing.T) {
	c := NewClient(nil, config.Default())
	u, err := url.Parse(c.Endpoint())
	if err != nil {
		t.Fatalf("Endpoint is not a URL: %v", err)
	}
	if u.Scheme != "https" || u.Host != "www.bing.com" || u.Path != "/HPImageArchive.aspx" {
		t.Fatalf("Endpoint = %q, want https://www.bing.com/HPImageArchive.aspx", c.Endpoint())
	}
	q := u.Query()
	want := map[string]string{"format": "js", "idx": "0", "n": "1", "mkt": "zh-CN", "uhd": "1"}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), v)
		}
	}
}

func TestLatest_ReturnsFirstImage(t *testing.T) {
	var calls []string
	c := NewClient(stubFetcher(sampleResponse, nil, &calls), config.Default())

	img, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if img.URLBase != "/th?id=OHR.AutumnLeaves_ZH-CN1234567890" {
		t.Fatalf("URLBase = %q", img.URLBase)
	}
	if img.Title != "Autumn leaves" || img.StartDate != "20231027" {
		t.Fatalf("descriptor = %+v", img)
	}
	if len(calls) != 1 || calls[0] != c.Endpoint() {
		t.Fatalf("calls = %v, want one call to endpoint", calls)
	}
}

func TestLatest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		wantErr error
	}{
		{"transport failure", "", errors.New("connection refused"), domain.ErrMetadataFetchFailed},
		{"bad json", "<html>", nil, domain.ErrMetadataFetchFailed},
		{"empty list", `{"images": []}`, nil, domain.ErrNoImageData},
		{"missing list", `{}`, nil, domain.ErrNoImageData},
		{"blank urlbase", `{"images": [{"urlbase": ""}]}`, nil, domain.ErrNoImageData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			c := NewClient(stubFetcher(tt.body, tt.err, &calls), config.Default())
			_, err := c.Latest(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Latest error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestImageURL(t *testing.T) {
	c := NewClient(nil, config.Default())

	got, err := c.ImageURL(Image{URLBase: "/th?id=OHR.AutumnLeaves_ZH-CN1234567890"})
	if err != nil {
		t.Fatalf("ImageURL returned error: %v", err)
	}
	want := "https://www.bing.com/th?id=OHR.AutumnLeaves_ZH-CN1234567890_UHD.jpg"
	if got != want {
		t.Fatalf("ImageURL = %q, want %q", got, want)
	}

	c.Resolution = "1920x1080"
	got, _ = c.ImageURL(Image{URLBase: "/th?id=X"})
	if got != "https://www.bing.com/th?id=X_1920x1080.jpg" {
		t.Fatalf("ImageURL = %q, want 1920x1080 suffix", got)
	}
}

func TestImageURL_RejectsHostChange(t *testing.T) {
	c := NewClient(nil, config.Default())
	_, err := c.ImageURL(Image{URLBase: "@evil.example/th?id=X"})
	if !errors.Is(err, domain.ErrMetadataFetchFailed) {
		t.Fatalf("ImageURL error = %v, want ErrMetadataFetchFailed", err)
	}
}

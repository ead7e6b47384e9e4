package desktop

import (
	"errors"
	"path/filepath"
	"testing"

	"bingpaper/domain"
)

func TestAbsPath(t *testing.T) {
	got, err := absPath("wallpapers/bing_2023-10-27.jpg")
	if err != nil {
		t.Fatalf("absPath returned error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("absPath = %q, want absolute", got)
	}
	if filepath.Base(got) != "bing_2023-10-27.jpg" {
		t.Fatalf("absPath = %q, lost the filename", got)
	}

	for _, bad := range []string{"", "bing\x00.jpg"} {
		if _, err := absPath(bad); !errors.Is(err, domain.ErrPathEncoding) {
			t.Errorf("absPath(%q) error = %v, want ErrPathEncoding", bad, err)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeCrop.String() != "crop" {
		t.Fatalf("ModeCrop.String() = %q", ModeCrop.String())
	}
	if Mode(7).String() != "Mode(7)" {
		t.Fatalf("Mode(7).String() = %q", Mode(7).String())
	}
}

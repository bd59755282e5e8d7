package mediastore

import (
	"strings"
	"testing"
)

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		contentType string
		want        Kind
	}{
		{"image/jpeg", KindImage},
		{"image/png", KindImage},
		{"video/mp4", KindVideo},
		{"application/pdf", KindRaw},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", KindRaw},
		{"text/plain", KindRaw},
		{"", KindRaw},
	}

	for _, test := range tests {
		t.Run(test.contentType, func(t *testing.T) {
			if got := ClassifyKind(test.contentType); got != test.want {
				t.Errorf("ClassifyKind(%q) = %q, want %q", test.contentType, got, test.want)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		head     []byte
		filename string
		want     string
	}{
		{"pdf by extension", []byte("%PDF-1.7 ..."), "syllabus.pdf", "application/pdf"},
		{"png by sniff with unknown extension", pngHeader, "photo.unknownext", "image/png"},
		{"no data falls back to extension", nil, "slides.pdf", "application/pdf"},
		{"nothing known", nil, "mystery", "application/octet-stream"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := DetectContentType(test.head, test.filename)
			// mime.TypeByExtension may append charset parameters on some
			// platforms; compare the bare type.
			if mediaType := strings.Split(got, ";")[0]; mediaType != test.want {
				t.Errorf("DetectContentType() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("course-materials", "Week 5 Notes.PDF")

	if !strings.HasPrefix(key, "course-materials/") {
		t.Errorf("BuildObjectKey() = %q, want course-materials/ prefix", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("BuildObjectKey() = %q, want lowercased .pdf suffix", key)
	}

	if other := BuildObjectKey("course-materials", "Week 5 Notes.PDF"); other == key {
		t.Error("BuildObjectKey() generated the same key twice")
	}

	if bare := BuildObjectKey("", "a.png"); strings.Contains(bare, "/") {
		t.Errorf("BuildObjectKey() with empty folder = %q, want no path separator", bare)
	}
}

func TestKeyFromPublicURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"standard url", "https://bucket.oss-eu-central-1.aliyuncs.com/flyers/abc.png", "flyers/abc.png", false},
		{"nested key", "https://bucket.host/a/b/c.pdf", "a/b/c.pdf", false},
		{"empty url", "", "", true},
		{"no path", "https://bucket.host", "", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := keyFromPublicURL(test.url)
			if (err != nil) != test.wantErr {
				t.Fatalf("keyFromPublicURL() error = %v, wantErr %v", err, test.wantErr)
			}
			if got != test.want {
				t.Errorf("keyFromPublicURL() = %q, want %q", got, test.want)
			}
		})
	}
}

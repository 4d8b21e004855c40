package mediaurl

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		ref    string
		want   string
	}{
		{"empty ref", "http://cinehub.test", "", ""},
		{"relative path", "http://cinehub.test", "/uploads/a.jpg", "http://cinehub.test/uploads/a.jpg"},
		{"bare path gets slash", "http://cinehub.test", "uploads/a.jpg", "http://cinehub.test/uploads/a.jpg"},
		{"absolute http unchanged", "http://cinehub.test", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https unchanged", "http://cinehub.test", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.origin, tt.ref); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.origin, tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveAll_PreservesOrder(t *testing.T) {
	got := ResolveAll("http://h", []string{"/a.jpg", "https://x/b.jpg", "/c.jpg"})
	want := []string{"http://h/a.jpg", "https://x/b.jpg", "http://h/c.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %d refs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("refs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOrigin(t *testing.T) {
	r := httptest.NewRequest("GET", "http://cinehub.test/api/movie", nil)
	if got := Origin(r); got != "http://cinehub.test" {
		t.Errorf("Origin = %q, want %q", got, "http://cinehub.test")
	}

	r = httptest.NewRequest("GET", "http://cinehub.test/api/movie", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	if got := Origin(r); got != "https://cinehub.test" {
		t.Errorf("Origin with forwarded proto = %q, want %q", got, "https://cinehub.test")
	}

	r = httptest.NewRequest("GET", "https://cinehub.test/api/movie", nil)
	r.TLS = &tls.ConnectionState{}
	if got := Origin(r); got != "https://cinehub.test" {
		t.Errorf("Origin with TLS = %q, want %q", got, "https://cinehub.test")
	}
}

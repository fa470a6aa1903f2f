package minio

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	r, err := NewURLResolver("http://localhost:9000/looks/")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"http://localhost:9000/looks/styleinspo/abc.jpg", "styleinspo/abc.jpg", true},
		{"https://LOCALHOST:9000/looks/styleinspo/abc.jpg?v=2", "styleinspo/abc.jpg", true},
		{"http://localhost:9000/other-bucket/abc.jpg", "", false},
		{"http://localhost:9000/looksy/abc.jpg", "", false},
		{"http://localhost:9000/looks/", "", false},
		{"https://images.unsplash.com/photo-123", "", false},
		{"not a url", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := r.PublicIDFromURL(tt.url)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("PublicIDFromURL(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	r, err := NewURLResolver("https://media.styleinspo.com/looks")
	if err != nil {
		t.Fatal(err)
	}
	u := r.PublicURL("styleinspo/x.png")
	if u != "https://media.styleinspo.com/looks/styleinspo/x.png" {
		t.Fatalf("PublicURL = %q", u)
	}
	if key, ok := r.PublicIDFromURL(u); !ok || key != "styleinspo/x.png" {
		t.Fatalf("PublicIDFromURL(%q) = %q, %v", u, key, ok)
	}
}

func TestNewURLResolverRejectsHostless(t *testing.T) {
	if _, err := NewURLResolver("/looks"); err == nil {
		t.Fatal("expected error for base url without host")
	}
}

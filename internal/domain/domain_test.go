package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestLookValidate(t *testing.T) {
	tests := []struct {
		name    string
		look    Look
		wantErr bool
	}{
		{"complete", Look{ID: "look-1", Title: "Summer", MainImage: "https://img/x.jpg"}, false},
		{"missing id", Look{Title: "Summer", MainImage: "https://img/x.jpg"}, true},
		{"missing image", Look{ID: "look-1", Title: "Summer"}, true},
		{"bad occasion", Look{ID: "look-1", Title: "Summer", MainImage: "u", Occasion: "brunch"}, true},
		{"good overrides", Look{ID: "look-1", Title: "Summer", MainImage: "u", Occasion: OccasionDateNight, Season: SeasonFall}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.look.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if err != nil && !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestLookImageURLsDeduplicates(t *testing.T) {
	l := Look{
		MainImage: "https://cdn/a.jpg",
		Items: Items{
			{ID: "1", Image: "https://cdn/b.jpg"},
			{ID: "2", Image: "https://cdn/a.jpg"},
			{ID: "3", Image: ""},
			{ID: "4", Image: "https://cdn/b.jpg"},
		},
	}

	got := l.ImageURLs()
	want := []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ImageURLs() = %v, want %v", got, want)
	}
}

func TestLookPatchValidate(t *testing.T) {
	empty := ""
	if err := (LookPatch{Title: &empty}).Validate(); err == nil {
		t.Fatal("expected error for empty title")
	}
	bad := Season("monsoon")
	if err := (LookPatch{Season: &bad}).Validate(); err == nil {
		t.Fatal("expected error for unknown season")
	}
	title := "New title"
	if err := (LookPatch{Title: &title}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(LookPatch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
}

func TestThemePatchMergesNestedFields(t *testing.T) {
	current := DefaultTheme()
	logo := "https://cdn/logo.png"
	current.Logo.URL = &logo

	patch := ThemePatch(`{"colors":{"primary":"#000000"},"layout":{"spacing":"tight"},"logo":{"url":"https://cdn/new.png"}}`)
	merged, err := patch.ApplyTo(current)
	if err != nil {
		t.Fatal(err)
	}

	if merged.Colors.Primary != "#000000" {
		t.Errorf("primary = %q", merged.Colors.Primary)
	}
	if merged.Colors.Secondary != "#9333ea" {
		t.Errorf("secondary should be kept, got %q", merged.Colors.Secondary)
	}
	if merged.Layout.Spacing != "tight" || merged.Layout.BorderRadius != "medium" {
		t.Errorf("layout = %+v", merged.Layout)
	}
	if merged.Logo.URL == nil || *merged.Logo.URL != "https://cdn/new.png" {
		t.Errorf("logo url = %v", merged.Logo.URL)
	}
	if *current.Logo.URL != "https://cdn/logo.png" {
		t.Errorf("current theme was mutated: %q", *current.Logo.URL)
	}
	if merged.Logo.Width != 120 {
		t.Errorf("logo width should be kept, got %d", merged.Logo.Width)
	}
}

func TestThemePatchRejectsMalformedDocument(t *testing.T) {
	_, err := ThemePatch(`{"colors":`).ApplyTo(DefaultTheme())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestThemeValidate(t *testing.T) {
	th := DefaultTheme()
	if err := th.Validate(); err != nil {
		t.Fatalf("default theme invalid: %v", err)
	}
	th.Typography.HeadingSize = "huge"
	if err := th.Validate(); err == nil {
		t.Fatal("expected error for unknown heading size")
	}
}

func TestVisibleSocialLinks(t *testing.T) {
	s := SiteSettings{SocialInstagram: "https://instagram.com/x", SocialTiktok: "  "}
	links := s.VisibleSocialLinks()
	if len(links) != 1 || links[0].Network != "instagram" {
		t.Fatalf("links = %+v", links)
	}
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	cause := errors.New("smtp down")
	err := NewUpstreamError("Failed to send", cause)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatal("expected ErrUpstreamUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
}

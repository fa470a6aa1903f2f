package vision

import (
	"strings"
	"testing"
)

const sampleAnalysis = `1. Clothing items: white linen shirt, beige trousers; leather loafers, straw hat, tote bag, sunglasses.
2. Colors: White, beige, tan.
3. Style aesthetic: relaxed minimalist.
4. Suggested occasion: weekend brunch or casual outing.
5. Seasonal appropriateness: ideal for summer heat.`

func TestParseFreeText(t *testing.T) {
	a := ParseFreeText(sampleAnalysis)

	if got := strings.Join(a.DetectedItems, "|"); got != "white linen shirt|beige trousers|leather loafers|straw hat|tote bag" {
		t.Errorf("items = %q", got)
	}
	if got := strings.Join(a.Colors, "|"); got != "white|beige|tan" {
		t.Errorf("colors = %q", got)
	}
	if a.StyleAesthetic != "relaxed minimalist" {
		t.Errorf("style = %q", a.StyleAesthetic)
	}
	if a.Occasion != "casual" {
		t.Errorf("occasion = %q", a.Occasion)
	}
	if a.Season != "summer" {
		t.Errorf("season = %q", a.Season)
	}
	if a.VisualDescription != sampleAnalysis {
		t.Error("visual description must keep the full text")
	}
}

func TestParseFreeTextDefaults(t *testing.T) {
	a := ParseFreeText("A person standing next to a wall")

	if len(a.DetectedItems) != 0 || len(a.Colors) != 0 {
		t.Errorf("items = %v, colors = %v", a.DetectedItems, a.Colors)
	}
	if a.StyleAesthetic != "modern fashion" {
		t.Errorf("style = %q", a.StyleAesthetic)
	}
	if a.Occasion != "casual" || a.Season != "current" {
		t.Errorf("occasion/season = %q/%q", a.Occasion, a.Season)
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		text, occasion, season string
	}{
		{"Great for the office in autumn", "professional", "fall"},
		{"An evening gala look for cold nights", "formal", "winter"},
		{"Perfect for a date in spring", "date-night", "spring"},
		{"Urban streetwear", "street-style", "current"},
	}
	for _, tt := range tests {
		a := ParseFreeText(tt.text)
		if a.Occasion != tt.occasion || a.Season != tt.season {
			t.Errorf("%q: got %q/%q, want %q/%q", tt.text, a.Occasion, a.Season, tt.occasion, tt.season)
		}
	}
}

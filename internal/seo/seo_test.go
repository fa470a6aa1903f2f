package seo

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

func firstTemplate(int) int { return 0 }

func TestComputePriceRangeSkipsUnparsable(t *testing.T) {
	pr := ComputePriceRange([]string{"$49.99", "not a price", "$120"})
	if got := pr.String(); got != "$49.99–$120" {
		t.Fatalf("range = %q, want $49.99–$120", got)
	}
	if pr.Parsed != 2 {
		t.Fatalf("parsed = %d, want 2", pr.Parsed)
	}
}

func TestComputePriceRangeFallsBackToDefault(t *testing.T) {
	for _, prices := range [][]string{nil, {"free", "", "$0", "call us"}} {
		pr := ComputePriceRange(prices)
		if got := pr.String(); got != "$50–$200" {
			t.Errorf("range for %v = %q, want $50–$200", prices, got)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,299.00", 1299, true},
		{"€45", 45, true},
		{"USD 12.5", 12.5, true},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	got := Slugify("Red Date-Night Outfit!! - 5 Piece Look")
	if got != "red-date-night-outfit-5-piece-look" {
		t.Fatalf("slug = %q", got)
	}
	for _, in := range []string{"--Hello__World--", "  Été  à  Paris ", "!!!", "a---b"} {
		s := Slugify(in)
		if s != "" && !slugPattern.MatchString(s) {
			t.Errorf("Slugify(%q) = %q is not a clean slug", in, s)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 70)
	got := Truncate(long, 60)
	if utf8.RuneCountInString(got) != 60 || !strings.HasSuffix(got, "...") {
		t.Fatalf("Truncate = %q", got)
	}
	if Truncate("short", 60) != "short" {
		t.Fatal("short strings must be kept")
	}
}

func sampleItems() domain.Items {
	return domain.Items{
		{ID: "i1", Name: "Silk Blouse", Price: "$49.99", Category: "Top"},
		{ID: "i2", Name: "Pleated Skirt", Price: "not a price", Category: "Bottom"},
		{ID: "i3", Name: "", Price: "$120", Category: "Shoes"},
	}
}

func TestSynthesizeWithVision(t *testing.T) {
	g := NewGenerator("Fashion Affiliate", firstTemplate)
	data, analysis := g.Synthesize(Input{
		MainImage: "https://cdn/look.jpg",
		Items:     sampleItems(),
		Vision: &domain.VisionAnalysis{
			DetectedItems:  []string{"blouse", "skirt"},
			Colors:         []string{"red", "black"},
			StyleAesthetic: "tailored minimalist",
			Occasion:       "professional",
			Season:         "fall",
		},
		UserSeason: "winter",
	})

	if data.PageTitle != "Red Professional Outfit - 3 Piece Look" {
		t.Errorf("title = %q", data.PageTitle)
	}
	if data.URLSlug != "red-professional-outfit-3-piece-look" {
		t.Errorf("slug = %q", data.URLSlug)
	}
	if analysis.Season != "winter" {
		t.Errorf("user season must win, got %q", analysis.Season)
	}
	if analysis.Occasion != "professional" {
		t.Errorf("occasion = %q", analysis.Occasion)
	}
	if analysis.Confidence != 0.85 {
		t.Errorf("confidence = %v", analysis.Confidence)
	}
	if analysis.PriceRange != "$49.99–$120" {
		t.Errorf("price range = %q", analysis.PriceRange)
	}
	if data.SchemaMarkup.Offers.LowPrice != "49.99" || data.SchemaMarkup.Offers.HighPrice != "120" {
		t.Errorf("offers = %+v", data.SchemaMarkup.Offers)
	}
	if data.MetaDescription != "red professional outfit - 3 tailored minimalist pieces. Shop the complete look now." {
		t.Errorf("meta = %q", data.MetaDescription)
	}
	if len(data.StylingTips) != 5 || data.StylingTips[3] != "Keep makeup subtle" {
		t.Errorf("tips = %v", data.StylingTips)
	}
	wantBody := []string{"all body types", "straight body type", "apple body type", "petite"}
	if strings.Join(analysis.BodyTypeSuitability, "|") != strings.Join(wantBody, "|") {
		t.Errorf("body types = %v", analysis.BodyTypeSuitability)
	}

	if _, ok := data.ItemDescriptions["i3"]; ok {
		t.Error("items without a name get no generated copy")
	}
	if got := data.ItemDescriptions["i1"]; got != "This red top silk blouse features tailored minimalist styling perfect for professional occasions. Available for $49.99." {
		t.Errorf("item description = %q", got)
	}
	if got := data.ItemAltTexts["i2"]; got != "red Bottom Pleated Skirt - tailored minimalist style for professional" {
		t.Errorf("alt text = %q", got)
	}

	raw, err := json.Marshal(data.SchemaMarkup)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"@type":"Product"`) || !strings.Contains(string(raw), `"@context":"https://schema.org/"`) {
		t.Errorf("schema markup json = %s", raw)
	}
}

func TestSynthesizeDegradedWithoutVision(t *testing.T) {
	g := NewGenerator("", firstTemplate)
	data, analysis := g.Synthesize(Input{MainImage: "https://cdn/look.jpg", Items: sampleItems()})

	if analysis.Occasion != "casual" || analysis.Season != "versatile" {
		t.Errorf("defaults = %q/%q", analysis.Occasion, analysis.Season)
	}
	if analysis.Confidence != 0.70 {
		t.Errorf("confidence = %v", analysis.Confidence)
	}
	if analysis.StyleAesthetic != "modern fashion" {
		t.Errorf("style = %q", analysis.StyleAesthetic)
	}
	if strings.Join(analysis.DetectedItems, ",") != "Silk Blouse,Pleated Skirt" {
		t.Errorf("detected items = %v", analysis.DetectedItems)
	}
	if !strings.HasPrefix(data.PageTitle, "Stylish Casual Outfit") {
		t.Errorf("title = %q", data.PageTitle)
	}
	if data.SchemaMarkup.Brand.Name != "Fashion Affiliate" {
		t.Errorf("brand = %q", data.SchemaMarkup.Brand.Name)
	}
}

func TestSynthesizeUserOverridesBeatVision(t *testing.T) {
	g := NewGenerator("Brand", firstTemplate)
	_, analysis := g.Synthesize(Input{
		Vision:       &domain.VisionAnalysis{Occasion: "formal", Season: "summer"},
		UserOccasion: "date-night",
	})
	if analysis.Occasion != "date-night" {
		t.Errorf("occasion = %q", analysis.Occasion)
	}
	if analysis.Season != "summer" {
		t.Errorf("season = %q", analysis.Season)
	}
}

func TestSynthesizeTruncatesLongTitle(t *testing.T) {
	g := NewGenerator("Brand", firstTemplate)
	data, _ := g.Synthesize(Input{
		Items:  sampleItems(),
		Vision: &domain.VisionAnalysis{Colors: []string{"deep burgundy with subtle golden undertones"}},
	})
	if n := utf8.RuneCountInString(data.PageTitle); n != 60 {
		t.Fatalf("title length = %d (%q)", n, data.PageTitle)
	}
	if !slugPattern.MatchString(data.URLSlug) {
		t.Fatalf("slug = %q", data.URLSlug)
	}
}

func TestReconcilePrunesAndFills(t *testing.T) {
	data := &domain.SEOData{
		ItemDescriptions: map[string]string{"keep": "hand edited", "gone": "old"},
		ItemAltTexts:     map[string]string{"keep": "alt", "gone": "old"},
	}
	items := domain.Items{
		{ID: "keep", Name: "Coat"},
		{ID: "new", Name: "Scarf", Category: "Accessory", Price: "$20"},
	}

	Reconcile(data, items, ContextFromAnalysis(&domain.AIAnalysis{Colors: []string{"blue"}, StyleAesthetic: "cozy", Occasion: "casual"}))

	if _, ok := data.ItemDescriptions["gone"]; ok {
		t.Error("removed item description must be pruned")
	}
	if _, ok := data.ItemAltTexts["gone"]; ok {
		t.Error("removed item alt text must be pruned")
	}
	if data.ItemDescriptions["keep"] != "hand edited" {
		t.Error("existing copy must not be overwritten")
	}
	if data.ItemDescriptions["new"] != "This blue accessory scarf features cozy styling perfect for casual occasions. Available for $20." {
		t.Errorf("new description = %q", data.ItemDescriptions["new"])
	}
	if data.ItemAltTexts["new"] == "" {
		t.Error("new alt text must be synthesized")
	}
}

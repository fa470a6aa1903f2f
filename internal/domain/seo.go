package domain

// Keywords: ключевые слова по трём уровням
type Keywords struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	LongTail  []string `json:"longTail"`
}

type InternalLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type ContentSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// SchemaOffer: schema.org AggregateOffer
type SchemaOffer struct {
	Type          string `json:"@type"`
	PriceCurrency string `json:"priceCurrency"`
	LowPrice      string `json:"lowPrice"`
	HighPrice     string `json:"highPrice"`
	Availability  string `json:"availability"`
	OfferCount    int    `json:"offerCount"`
}

type SchemaBrand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type SchemaProperty struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SchemaMarkup: разметка schema.org Product для встраивания в страницу образа
type SchemaMarkup struct {
	Context            string           `json:"@context"`
	Type               string           `json:"@type"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Image              string           `json:"image"`
	Category           string           `json:"category"`
	Color              string           `json:"color"`
	Style              string           `json:"style"`
	Offers             SchemaOffer      `json:"offers"`
	Brand              SchemaBrand      `json:"brand"`
	AdditionalProperty []SchemaProperty `json:"additionalProperty"`
	Keywords           string           `json:"keywords"`
}

// SEOData: регенерируемый пакет SEO-текстов образа.
// ItemDescriptions и ItemAltTexts всегда ключуются текущими id вещей.
type SEOData struct {
	PageTitle         string            `json:"pageTitle"`
	MetaDescription   string            `json:"metaDescription"`
	URLSlug           string            `json:"urlSlug"`
	H1                string            `json:"h1"`
	H2s               []string          `json:"h2s"`
	OutfitDescription string            `json:"outfitDescription"`
	StylingTips       []string          `json:"stylingTips"`
	OccasionGuide     string            `json:"occasionGuide"`
	ItemDescriptions  map[string]string `json:"itemDescriptions"`
	Keywords          Keywords          `json:"keywords"`
	ImageAltText      string            `json:"imageAltText"`
	ItemAltTexts      map[string]string `json:"itemAltTexts"`
	SchemaMarkup      SchemaMarkup      `json:"schemaMarkup"`
	InternalLinks     []InternalLink    `json:"internalLinks"`
	ContentSections   []ContentSection  `json:"contentSections"`
}

// AIAnalysis: снимок того, что увидела модель. Пользовательские
// occasion/season у образа имеют приоритет над этими значениями.
type AIAnalysis struct {
	DetectedItems       []string `json:"detectedItems"`
	Colors              []string `json:"colors"`
	StyleAesthetic      string   `json:"styleAesthetic"`
	Occasion            string   `json:"occasion"`
	Season              string   `json:"season"`
	PriceRange          string   `json:"priceRange"`
	BodyTypeSuitability []string `json:"bodyTypeSuitability"`
	Confidence          float64  `json:"confidence"`
}

// VisionAnalysis: результат визуального анализа от любого из провайдеров
type VisionAnalysis struct {
	DetectedItems     []string `json:"detectedItems"`
	Colors            []string `json:"colors"`
	StyleAesthetic    string   `json:"styleAesthetic"`
	Occasion          string   `json:"occasion"`
	Season            string   `json:"season"`
	VisualDescription string   `json:"visualDescription"`
}

// SEOGenerationRequest: вход генератора SEO
type SEOGenerationRequest struct {
	LookID       string   `json:"lookId"`
	MainImage    string   `json:"mainImage"`
	Title        string   `json:"title"`
	Tags         []string `json:"tags"`
	Items        Items    `json:"items"`
	UserOccasion string   `json:"userOccasion,omitempty"`
	UserSeason   string   `json:"userSeason,omitempty"`
}

// SEOGenerationResponse: результат генерации; при Success=false SEO образа не меняется
type SEOGenerationResponse struct {
	Success    bool        `json:"success"`
	SEOData    *SEOData    `json:"seoData,omitempty"`
	AIAnalysis *AIAnalysis `json:"aiAnalysis,omitempty"`
	Error      string      `json:"error,omitempty"`
}

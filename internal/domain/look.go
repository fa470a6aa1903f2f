package domain

import (
	"net/url"
	"strings"
	"time"
)

// Occasion: пользовательское уточнение повода для образа
type Occasion string

const (
	OccasionProfessional Occasion = "professional"
	OccasionCasual       Occasion = "casual"
	OccasionDateNight    Occasion = "date-night"
	OccasionFormal       Occasion = "formal"
	OccasionStreetStyle  Occasion = "street-style"
)

// Valid сообщает, входит ли значение в допустимый набор
func (o Occasion) Valid() bool {
	switch o {
	case OccasionProfessional, OccasionCasual, OccasionDateNight, OccasionFormal, OccasionStreetStyle:
		return true
	}
	return false
}

// Season: пользовательское уточнение сезона
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter:
		return true
	}
	return false
}

// Item: одна вещь в образе со ссылкой на партнёрский магазин
type Item struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	AffiliateLink   string `json:"affiliateLink"`
	Image           string `json:"image"`
	Category        string `json:"category"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Validate проверяет поля вещи, которые требует форма добавления
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return NewValidationError("item name is required")
	}
	if strings.TrimSpace(it.Price) == "" {
		return NewValidationError("item price is required")
	}
	u, err := url.Parse(it.AffiliateLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("affiliateLink must be a valid URL")
	}
	return nil
}

// ItemPatch: изменение вещи из формы редактирования.
// SEODescription и AltText: ручные правки текстов в SEO-пакете образа.
type ItemPatch struct {
	Name            *string `json:"name,omitempty"`
	Price           *string `json:"price,omitempty"`
	AffiliateLink   *string `json:"affiliateLink,omitempty"`
	Image           *string `json:"image,omitempty"`
	Category        *string `json:"category,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	SEODescription  *string `json:"description,omitempty"`
	AltText         *string `json:"altText,omitempty"`
}

// ApplyTo возвращает вещь с применёнными изменениями
func (p ItemPatch) ApplyTo(it Item) Item {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&it.Name, p.Name)
	set(&it.Price, p.Price)
	set(&it.AffiliateLink, p.AffiliateLink)
	set(&it.Image, p.Image)
	set(&it.Category, p.Category)
	set(&it.BackgroundColor, p.BackgroundColor)
	return it
}

// Items: упорядоченный список вещей, порядок равен порядку отображения
type Items []Item

// Find возвращает вещь по id
func (items Items) Find(id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// IDs возвращает множество идентификаторов вещей
func (items Items) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(items))
	for _, it := range items {
		ids[it.ID] = struct{}{}
	}
	return ids
}

// Look представляет образ (пост) с главным фото и вещами,
// соответствует таблице fashion_looks в бд
type Look struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	MainImage      string      `json:"mainImage"`
	Items          Items       `json:"items"`
	Tags           []string    `json:"tags"`
	CreatedAt      time.Time   `json:"createdAt"`
	SEO            *SEOData    `json:"seo,omitempty"`
	AIAnalysis     *AIAnalysis `json:"aiAnalysis,omitempty"`
	Occasion       Occasion    `json:"occasion,omitempty"`
	Season         Season      `json:"season,omitempty"`
	SEOLastUpdated *time.Time  `json:"seoLastUpdated,omitempty"`
}

// Validate проверяет обязательные поля при создании
func (l *Look) Validate() error {
	var missing []string
	if strings.TrimSpace(l.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(l.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(l.MainImage) == "" {
		missing = append(missing, "mainImage")
	}
	if len(missing) > 0 {
		return NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return validateOverrides(l.Occasion, l.Season)
}

// ImageURLs возвращает главное фото и фото всех вещей без повторов
func (l *Look) ImageURLs() []string {
	seen := make(map[string]struct{}, len(l.Items)+1)
	urls := make([]string, 0, len(l.Items)+1)
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	add(l.MainImage)
	for _, it := range l.Items {
		add(it.Image)
	}
	return urls
}

// LookPatch: частичное обновление: nil означает «не менять»
type LookPatch struct {
	Title          *string     `json:"title,omitempty"`
	MainImage      *string     `json:"mainImage,omitempty"`
	Items          *Items      `json:"items,omitempty"`
	Tags           *[]string   `json:"tags,omitempty"`
	SEO            *SEOData    `json:"seo,omitempty"`
	AIAnalysis     *AIAnalysis `json:"aiAnalysis,omitempty"`
	Occasion       *Occasion   `json:"occasion,omitempty"`
	Season         *Season     `json:"season,omitempty"`
	SEOLastUpdated *time.Time  `json:"seoLastUpdated,omitempty"`
}

// Empty сообщает, что патч ничего не меняет
func (p LookPatch) Empty() bool {
	return p.Title == nil && p.MainImage == nil && p.Items == nil && p.Tags == nil &&
		p.SEO == nil && p.AIAnalysis == nil && p.Occasion == nil && p.Season == nil &&
		p.SEOLastUpdated == nil
}

// Validate проверяет, что переданные поля не обнуляют обязательные значения
func (p LookPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title must not be empty")
	}
	if p.MainImage != nil && strings.TrimSpace(*p.MainImage) == "" {
		return NewValidationError("mainImage must not be empty")
	}
	var occ Occasion
	var season Season
	if p.Occasion != nil {
		occ = *p.Occasion
	}
	if p.Season != nil {
		season = *p.Season
	}
	return validateOverrides(occ, season)
}

func validateOverrides(occ Occasion, season Season) error {
	if occ != "" && !occ.Valid() {
		return NewValidationError("unknown occasion: " + string(occ))
	}
	if season != "" && !season.Valid() {
		return NewValidationError("unknown season: " + string(season))
	}
	return nil
}

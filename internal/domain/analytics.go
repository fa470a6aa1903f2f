package domain

import "time"

// ClientContext: данные о клиенте, извлечённые из заголовков запроса
type ClientContext struct {
	UserAgent string
	IPAddress string
	Referrer  string
}

// PageView: событие просмотра страницы, только добавляется
type PageView struct {
	ID        string    `json:"id" db:"id"`
	PagePath  string    `json:"page_path" db:"page_path"`
	LookID    *string   `json:"look_id" db:"look_id"`
	UserAgent *string   `json:"user_agent" db:"user_agent"`
	IPAddress *string   `json:"ip_address" db:"ip_address"`
	Referrer  *string   `json:"referrer" db:"referrer"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AffiliateClick: переход по партнёрской ссылке, только добавляется
type AffiliateClick struct {
	ID           string    `json:"id" db:"id"`
	LookID       string    `json:"look_id" db:"look_id"`
	ItemID       string    `json:"item_id" db:"item_id"`
	ItemName     *string   `json:"item_name" db:"item_name"`
	AffiliateURL string    `json:"affiliate_url" db:"affiliate_url"`
	UserAgent    *string   `json:"user_agent" db:"user_agent"`
	IPAddress    *string   `json:"ip_address" db:"ip_address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LookViews: число просмотров образа (0, если просмотров не было)
type LookViews struct {
	LookID string `json:"look_id" db:"look_id"`
	Title  string `json:"title" db:"title"`
	Views  int64  `json:"views" db:"views"`
}

type LookClicks struct {
	LookID string `json:"look_id" db:"look_id"`
	Clicks int64  `json:"clicks" db:"clicks"`
}

type DailyViews struct {
	Date  time.Time `json:"date" db:"date"`
	Views int64     `json:"views" db:"views"`
}

// AnalyticsSummary: агрегаты для админ-панели
type AnalyticsSummary struct {
	TopLooks        []LookViews  `json:"topLooks"`
	RecentViews     []PageView   `json:"recentViews"`
	AffiliateClicks []LookClicks `json:"affiliateClicks"`
	DailyViews      []DailyViews `json:"dailyViews"`
}

// OptionalString возвращает nil для пустой строки
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

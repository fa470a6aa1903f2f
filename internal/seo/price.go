package seo

import (
	"strconv"
	"strings"
)

const (
	defaultMinPrice = 50
	defaultMaxPrice = 200
)

// PriceRange: агрегированный диапазон цен вещей образа
type PriceRange struct {
	Min float64
	Max float64
	// Parsed: число цен, которые удалось разобрать
	Parsed int
}

// ParsePrice оставляет в строке только цифры и точку и разбирает число.
// Нераспознанные и неположительные значения возвращают ok=false.
func ParsePrice(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ComputePriceRange берёт min/max по разобранным ценам, остальные пропускает.
// Если ни одна цена не разобрана, возвращает $50–$200.
func ComputePriceRange(prices []string) PriceRange {
	pr := PriceRange{}
	for _, raw := range prices {
		v, ok := ParsePrice(raw)
		if !ok {
			continue
		}
		if pr.Parsed == 0 || v < pr.Min {
			pr.Min = v
		}
		if pr.Parsed == 0 || v > pr.Max {
			pr.Max = v
		}
		pr.Parsed++
	}
	if pr.Parsed == 0 {
		pr.Min, pr.Max = defaultMinPrice, defaultMaxPrice
	}
	return pr
}

func (p PriceRange) LowString() string  { return formatAmount(p.Min) }
func (p PriceRange) HighString() string { return formatAmount(p.Max) }

// String возвращает диапазон в виде "$49.99–$120"
func (p PriceRange) String() string {
	return "$" + p.LowString() + "–$" + p.HighString()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package models

import "time"

// SourceKind различает живой и синтетический источник.
type SourceKind string

const (
	SourceKindLive      SourceKind = "live"
	SourceKindSynthetic SourceKind = "synthetic"
)

// RateLimitInfo — сведения о квоте апстрима, если он их отдаёт.
type RateLimitInfo struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// SourceDescriptor — публичное описание зарегистрированного источника.
type SourceDescriptor struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      SourceKind     `json:"kind"`
	Enabled   bool           `json:"enabled"`
	RateLimit *RateLimitInfo `json:"rateLimit,omitempty"`
}

// TrendingResult — результат одного прохода курирования.
type TrendingResult struct {
	Articles  []Article            `json:"articles"`
	Sources   []SourceDescriptor   `json:"sources"`
	Stats     CategoryDistribution `json:"stats"`
	Timestamp time.Time            `json:"timestamp"`
}

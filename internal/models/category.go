package models

import (
	"fmt"
	"strings"
)

// Category — фиксированная тематическая классификация статьи.
type Category string

const (
	CategoryTech          Category = "tech"
	CategoryAI            Category = "ai"
	CategoryProgramming   Category = "programming"
	CategoryGadget        Category = "gadget"
	CategoryEntertainment Category = "entertainment"
	CategorySports        Category = "sports"
	CategoryBusiness      Category = "business"
	CategoryScience       Category = "science"
	CategoryGaming        Category = "gaming"
	CategoryOther         Category = "other"
)

// Categories возвращает все категории в каноническом порядке.
func Categories() []Category {
	return []Category{
		CategoryTech,
		CategoryAI,
		CategoryProgramming,
		CategoryGadget,
		CategoryEntertainment,
		CategorySports,
		CategoryBusiness,
		CategoryScience,
		CategoryGaming,
		CategoryOther,
	}
}

// IsTechAdjacent сообщает, относится ли категория к техно-тематике.
func (c Category) IsTechAdjacent() bool {
	switch c {
	case CategoryTech, CategoryAI, CategoryProgramming, CategoryGadget:
		return true
	default:
		return false
	}
}

// Valid сообщает, входит ли значение в перечисление.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}

	return false
}

// ParseCategory разбирает строку без учёта регистра.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}

	return c, nil
}

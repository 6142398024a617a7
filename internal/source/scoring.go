package source

import (
	"github.com/pribylovaa/trending-curator/internal/models"
)

// Веса счётчиков вовлечённости и потолок нормализации трендовости.
const (
	likeWeight    = 1.0
	shareWeight   = 2.0
	quoteWeight   = 3.0
	replyWeight   = 0.5
	trendingCeil  = 1000.0
	vendorBonus   = 15.0
	infraBonus    = 10.0
	defaultBaseTS = 20.0
)

// Engagement — счётчики вовлечённости поста.
type Engagement struct {
	Likes   int
	Shares  int
	Quotes  int
	Replies int
}

// TrendingScore нормализует взвешенную сумму счётчиков в [0,100].
func TrendingScore(e Engagement) float64 {
	weighted := float64(e.Likes)*likeWeight +
		float64(e.Shares)*shareWeight +
		float64(e.Quotes)*quoteWeight +
		float64(e.Replies)*replyWeight

	return models.ClampScore(weighted / trendingCeil * 100)
}

// techBase — стартовое значение techScore по категории.
var techBase = map[models.Category]float64{
	models.CategoryAI:            70,
	models.CategoryProgramming:   70,
	models.CategoryTech:          65,
	models.CategoryGadget:        60,
	models.CategoryScience:       45,
	models.CategoryGaming:        35,
	models.CategoryBusiness:      30,
	models.CategoryOther:         defaultBaseTS,
	models.CategoryEntertainment: 15,
	models.CategorySports:        10,
}

// entertainmentBase — значение entertainmentValue по категории.
var entertainmentBase = map[models.Category]float64{
	models.CategoryEntertainment: 85,
	models.CategoryGaming:        80,
	models.CategorySports:        75,
	models.CategoryGadget:        45,
	models.CategoryOther:         40,
	models.CategoryScience:       35,
	models.CategoryAI:            30,
	models.CategoryTech:          30,
	models.CategoryBusiness:      25,
	models.CategoryProgramming:   20,
}

var (
	vendorPattern = wordsPattern(`apple|google|alphabet|microsoft|amazon|meta|nvidia|openai|anthropic|intel|amd|samsung|tesla|ibm|oracle|qualcomm|tsmc`)
	infraPattern  = wordsPattern(`cloud|api|apis|servers?|databases?|kubernetes|docker|aws|azure|gcp|linux|data ?centers?|infrastructure|networks?|security|gpus?`)
)

// TechScore — база по категории плюс бонусы за упоминание вендоров
// и технической инфраструктуры, не больше 100.
func TechScore(category models.Category, text string) float64 {
	score, ok := techBase[category]
	if !ok {
		score = defaultBaseTS
	}

	if vendorPattern.MatchString(text) {
		score += vendorBonus
	}

	if infraPattern.MatchString(text) {
		score += infraBonus
	}

	return models.ClampScore(score)
}

// EntertainmentValue возвращает привлекательность категории вне техно-тематики.
func EntertainmentValue(category models.Category) float64 {
	if v, ok := entertainmentBase[category]; ok {
		return v
	}

	return entertainmentBase[models.CategoryOther]
}

package source

import (
	"regexp"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// categoryRule — правило классификации: первая совпавшая категория побеждает.
type categoryRule struct {
	category models.Category
	pattern  *regexp.Regexp
}

func wordsPattern(alternatives string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + alternatives + `)\b`)
}

// categoryRules упорядочены: узкие темы раньше общих (gaming раньше entertainment,
// tech — последним из техно-правил).
var categoryRules = []categoryRule{
	{models.CategoryAI, wordsPattern(`ai|artificial intelligence|machine learning|deep learning|llms?|gpt-?\d*|chatgpt|openai|anthropic|claude|gemini|neural networks?|generative`)},
	{models.CategoryProgramming, wordsPattern(`programming|programmers?|developers?|coding|source code|open source|github|golang|rust|python|javascript|typescript|java|kotlin|swift|compilers?|frameworks?|refactoring`)},
	{models.CategoryGadget, wordsPattern(`gadgets?|iphone|ipad|android|smartphones?|pixel|galaxy|wearables?|smartwatch|headphones|earbuds|laptops?|tablets?|vision pro`)},
	{models.CategoryGaming, wordsPattern(`games?|gaming|gamers?|playstation|ps5|xbox|nintendo|switch 2|steam|esports|e-sports`)},
	{models.CategoryScience, wordsPattern(`science|scientists?|space|nasa|spacex|physics|astronomy|quantum|biology|research|climate|telescope`)},
	{models.CategoryBusiness, wordsPattern(`startups?|funding|ipo|stocks?|market|acquisitions?|acquires|revenue|earnings|layoffs|valuation|investors?|venture`)},
	{models.CategorySports, wordsPattern(`sports?|football|soccer|nba|nfl|mlb|olympics|tennis|baseball|basketball|world cup|championship`)},
	{models.CategoryEntertainment, wordsPattern(`movies?|films?|music|netflix|series|celebrity|anime|concert|album|box office|streaming show|tv show`)},
	{models.CategoryTech, wordsPattern(`tech|technology|software|hardware|cloud|internet|cyber|cybersecurity|5g|semiconductors?|chips?|robots?|robotics|saas`)},
}

// Classify определяет категорию по тексту: первое совпавшее правило,
// по умолчанию CategoryOther.
func Classify(text string) models.Category {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}

	return models.CategoryOther
}

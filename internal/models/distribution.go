package models

// CategoryDistribution — либо целевая таблица процентов по категориям,
// либо фактические счётчики статей в выдаче. В JSON сериализуется
// объектом с ключами-именами категорий и целыми значениями.
type CategoryDistribution map[Category]int

// NewCategoryDistribution возвращает распределение со всеми категориями и нулями.
func NewCategoryDistribution() CategoryDistribution {
	d := make(CategoryDistribution, len(Categories()))
	for _, c := range Categories() {
		d[c] = 0
	}

	return d
}

// DefaultDistribution — встроенная целевая таблица, сумма равна 100.
func DefaultDistribution() CategoryDistribution {
	return CategoryDistribution{
		CategoryTech:          25,
		CategoryAI:            15,
		CategoryProgramming:   10,
		CategoryGadget:        10,
		CategoryEntertainment: 10,
		CategorySports:        8,
		CategoryBusiness:      8,
		CategoryScience:       7,
		CategoryGaming:        5,
		CategoryOther:         2,
	}
}

// Total возвращает сумму значений.
func (d CategoryDistribution) Total() int {
	var sum int
	for _, v := range d {
		sum += v
	}

	return sum
}

// Clone копирует распределение.
func (d CategoryDistribution) Clone() CategoryDistribution {
	out := make(CategoryDistribution, len(d))
	for k, v := range d {
		out[k] = v
	}

	return out
}

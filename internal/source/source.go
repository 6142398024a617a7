// source определяет контракт поставщика статей и общие помощники
// (TTL-кэш, классификация, оценки, нормализация текста), которые
// конкретные источники держат полями и к которым делегируют.
package source

import (
	"context"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// Source описывает поставщика статей (живой апстрим или синтетика).
//
// Требования к реализации:
//  1. FetchArticles сначала смотрит в собственный TTL-кэш; при промахе выполняет
//     загрузку, кладёт результат в кэш и только потом возвращает его;
//  2. FetchArticles возвращает *FetchError, если не удалось получить вообще ничего;
//     частичный успех многозапросного источника ошибкой не считается;
//  3. IsAvailable никогда не паникует и не возвращает ошибку — любой сбой это false;
//  4. реализация обязана уважать ctx (отмена/таймауты) и ограничивать время
//     собственного сетевого вызова.
type Source interface {
	// ID — логический идентификатор ("social", "rss", "topics").
	ID() string
	// Name — отображаемое имя.
	Name() string
	// Kind — живой или синтетический источник.
	Kind() models.SourceKind
	// FetchArticles возвращает актуальный снимок статей.
	FetchArticles(ctx context.Context) ([]models.Article, error)
	// IsAvailable пробует загрузку и сообщает, удалась ли она.
	IsAvailable(ctx context.Context) bool
	// RateLimitInfo возвращает квоту апстрима или nil, если она неизвестна.
	RateLimitInfo() *models.RateLimitInfo
}

// Probe — общая реализация IsAvailable через попытку загрузки.
func Probe(ctx context.Context, s Source) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	_, err := s.FetchArticles(ctx)
	return err == nil
}

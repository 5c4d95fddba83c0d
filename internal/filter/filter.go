package filter

import (
	"context"
	"strings"

	"github.com/maine/nigeria_jobs_bot/internal/config"
	"github.com/maine/nigeria_jobs_bot/internal/jobs"
)

// Filter реализует бизнес-правила отсечения твитов: дедупликация по id,
// пропуск уже отправленных и include/exclude-матчинг по тексту.
type Filter struct {
	include []string
	exclude []string
}

// New создаёт экземпляр фильтра. Списки слов приводятся к нижнему
// регистру один раз при создании.
func New(cfg config.Filters) *Filter {
	return &Filter{
		include: lowerAll(cfg.Include),
		exclude: lowerAll(cfg.Exclude),
	}
}

// Apply реализует app.Filter.
// Порядок обработки: дедупликация по id (первое вхождение выигрывает,
// порядок выдачи сохраняется), затем пропуск уже отправленных id из state,
// затем keyword-матчинг. Отклонённые фильтром id в state не попадают:
// при изменении списков слов они могут пройти в следующем запуске.
func (f *Filter) Apply(ctx context.Context, tweets []jobs.TweetRaw, state jobs.State) ([]jobs.TweetRaw, error) {
	_ = ctx // фильтр синхронный и контекст не использует

	postedIDs := make(map[string]struct{}, len(state.PostedJobs))
	for _, job := range state.PostedJobs {
		postedIDs[job.ID] = struct{}{}
	}

	seen := make(map[string]struct{})
	filtered := make([]jobs.TweetRaw, 0, len(tweets))

	for _, tweet := range tweets {
		// Один и тот же твит может прийти по нескольким поисковым запросам
		if _, ok := seen[tweet.ID]; ok {
			continue
		}
		seen[tweet.ID] = struct{}{}

		if _, alreadyPosted := postedIDs[tweet.ID]; alreadyPosted {
			continue
		}

		if !f.Matches(tweet.Text) {
			continue
		}

		filtered = append(filtered, tweet)
	}

	return filtered, nil
}

// Matches решает, проходит ли текст include/exclude-фильтры.
// Непустой include требует хотя бы одного вхождения include-подстроки.
// Любое вхождение exclude-подстроки отклоняет текст независимо от
// include-совпадений: exclude всегда побеждает.
func (f *Filter) Matches(text string) bool {
	textLower := strings.ToLower(text)

	if len(f.include) > 0 {
		hasInclude := false
		for _, term := range f.include {
			if strings.Contains(textLower, term) {
				hasInclude = true
				break
			}
		}
		if !hasInclude {
			return false
		}
	}

	for _, term := range f.exclude {
		if strings.Contains(textLower, term) {
			return false
		}
	}

	return true
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(strings.ToLower(term))
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

package jobs

import "time"

// TweetRaw описывает твит сразу после получения из поискового API.
type TweetRaw struct {
	ID             string    `json:"id"`
	Keyword        string    `json:"keyword"`
	Text           string    `json:"text"`
	AuthorName     string    `json:"author_name"`
	AuthorUsername string    `json:"author_username"`
	URL            string    `json:"url"`
	CreatedAt      time.Time `json:"created_at"`
	Likes          int       `json:"likes"`
	Retweets       int       `json:"retweets"`
}

// State хранит минимальную информацию об уже отправленных вакансиях.
type State struct {
	LastRun    time.Time  `json:"last_run"`
	PostedJobs []StateJob `json:"posted_jobs"`
}

// StateJob описывает запись об отправленной в Slack вакансии.
type StateJob struct {
	ID       string    `json:"id"`
	PostedAt time.Time `json:"posted_at"`
}

// HasPosted сообщает, отправлялся ли твит с данным id ранее.
func (s *State) HasPosted(id string) bool {
	for _, job := range s.PostedJobs {
		if job.ID == id {
			return true
		}
	}
	return false
}

// RecordPosted добавляет id в историю отправленных. Повторный вызов
// с тем же id не создаёт дубликат записи.
func (s *State) RecordPosted(id string, at time.Time) {
	if s.HasPosted(id) {
		return
	}
	s.PostedJobs = append(s.PostedJobs, StateJob{ID: id, PostedAt: at})
}

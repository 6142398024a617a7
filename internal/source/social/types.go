package social

// searchResponse — ответ эндпоинта recent search (API v2).
type searchResponse struct {
	Data     []post   `json:"data"`
	Includes includes `json:"includes"`
	Meta     meta     `json:"meta"`
}

// post — один пост из выдачи поиска.
type post struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	AuthorID      string        `json:"author_id"`
	CreatedAt     string        `json:"created_at"`
	Lang          string        `json:"lang"`
	PublicMetrics publicMetrics `json:"public_metrics"`
	Entities      entities      `json:"entities"`
}

// publicMetrics — счётчики вовлечённости.
type publicMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

type entities struct {
	Hashtags []hashtag `json:"hashtags"`
}

type hashtag struct {
	Tag string `json:"tag"`
}

// includes — расширения выдачи (expansions=author_id).
type includes struct {
	Users []user `json:"users"`
}

type user struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type meta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

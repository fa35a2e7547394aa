package transfer

type PostCreation struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Platforms     []string `json:"platforms"`
	ScheduledTime string   `json:"scheduled_time"` // "2006-01-02T15:04", empty for drafts and evergreen
	IsEvergreen   bool     `json:"is_evergreen"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
}

type PostUpdate struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Platforms     []string `json:"platforms"`
	ScheduledTime string   `json:"scheduled_time"`
	IsEvergreen   bool     `json:"is_evergreen"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
}

// EvergreenSchedule is the request body of POST /content-posts/evergreen-schedule.
// The engine merges ScheduledDate's year/month/day with ScheduledTime's
// hour/minute. Exactly one of PartnerIDs or Tag selects the target partners.
type EvergreenSchedule struct {
	ScheduledDate string   `json:"scheduled_date"` // "2006-01-02"
	ScheduledTime string   `json:"scheduled_time"` // "15:04", optional
	Platforms     []string `json:"platforms"`
	PartnerIDs    []int64  `json:"partner_ids"`
	Tag           string   `json:"tag"`
	CustomFooter  string   `json:"custom_footer"`
}

type ScheduleSummary struct {
	Scheduled int `json:"scheduled"`
	PostsUsed int `json:"posts_used"`
}

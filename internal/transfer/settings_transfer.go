package transfer

type SettingsUpdate struct {
	PostingTime   string `json:"posting_time"`
	DefaultFooter string `json:"default_footer"`
	Timezone      string `json:"timezone"`
}

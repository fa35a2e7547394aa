package transfer

type PartnerCreation struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Tags    []string `json:"tags"`
}

type PartnerUpdate struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

type InviteCreation struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type InviteAccept struct {
	Token string `json:"token"`
}

package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ConnectStateClaims is the OAuth `state` value issued by BeginConnect. It
// binds the pending connection to one partner and one platform so the
// callback can reject a state it never issued.
type ConnectStateClaims struct {
	PartnerID string `json:"partner_id"`
	Platform  string `json:"platform"`
	Nonce     string `json:"nonce"`
	jwt.RegisteredClaims
}

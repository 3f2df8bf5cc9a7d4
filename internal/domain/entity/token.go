package entity

// TokenClaim is the identity payload embedded in a signed bearer token.
type TokenClaim struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

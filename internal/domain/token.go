package domain

// Token is what the login endpoint returns: a self-contained signed access
// token. Nothing is persisted server-side; validity is determined solely by
// signature and expiry at verification time.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}

package dto

// RefreshReq represents the request for /refresh-token and /logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

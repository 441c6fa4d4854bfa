package dto

// LoginResponse carries the issued access token and the authenticated user.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

package response

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type ProtectedResponse struct {
	LoggedInAs string `json:"logged_in_as"`
}

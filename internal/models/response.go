package models

// Response bodies always carry a message the client can show as is.
type MessageResponse struct {
	Message string `json:"message"`
}

func ErrorResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

type IDResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

type UsersResponse struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}

type SigninResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

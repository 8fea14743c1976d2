package models

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleAuthRequest struct {
	GoogleID       string `json:"google_id" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	ProfilePicture string `json:"profile_picture"`
}

type UpdateProfileRequest struct {
	FirstName *string  `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  *string  `json:"last_name" validate:"omitempty,min=2,max=50"`
	Bio       *string  `json:"bio" validate:"omitempty,max=1000"`
	Interests []string `json:"interests"`
}

type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

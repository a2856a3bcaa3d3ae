package models

// User is an authenticated dashboard user. PasswordHash never leaves the API
// service.
type User struct {
	ID           string `json:"id" bson:"-"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash []byte `json:"-" bson:"password"`
	Role         string `json:"role" bson:"role"`
}

// AuthUser is the public projection of a user returned by the login endpoint.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

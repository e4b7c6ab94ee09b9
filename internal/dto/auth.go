package dto

import "time"

type RegisterRequest struct {
	Workspace string `json:"workspace"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Password  string `json:"password"`
}

type RegisterResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Workspace string `json:"workspace_id"`
}

type LoginRequest struct {
	Workspace string `json:"workspace"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Workspace string    `json:"workspace_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

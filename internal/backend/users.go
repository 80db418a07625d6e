package backend

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", in, &resp, "data"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/users/", "", in, &u, "user", "data"); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", token, nil, &users, "users", "data"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileUpdate) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", token, in, &u, "user", "data"); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, token string, in PasswordChange) error {
	return c.do(ctx, http.MethodPost, "/api/users/change-password", token, in, nil)
}

// UploadProfilePicture forwards the image as multipart field "profilePicture"
func (c *Client) UploadProfilePicture(ctx context.Context, token, filename string, file io.Reader) (*User, error) {
	var u User
	if err := c.upload(ctx, "/api/users/upload-profile-picture", token, "profilePicture", filename, file, &u, "user", "data"); err != nil {
		return nil, err
	}
	return &u, nil
}

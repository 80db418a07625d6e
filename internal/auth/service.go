package auth

import (
	"context"
	"errors"
	"io"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/wizard"
	"skybook/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Backend is the users resource of the REST backend
type Backend interface {
	Login(ctx context.Context, in backend.LoginRequest) (*backend.LoginResponse, error)
	Register(ctx context.Context, in backend.RegisterRequest) (*backend.User, error)
	ListUsers(ctx context.Context, token string) ([]backend.User, error)
	UpdateProfile(ctx context.Context, token string, in backend.ProfileUpdate) (*backend.User, error)
	ChangePassword(ctx context.Context, token string, in backend.PasswordChange) error
	UploadProfilePicture(ctx context.Context, token, filename string, file io.Reader) (*backend.User, error)
}

type Service interface {
	Login(ctx context.Context, sess *session.Session, req *LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*backend.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	Me(sess *session.Session) *MeResponse
	UpdateProfile(ctx context.Context, sess *session.Session, req *UpdateProfileRequest) (*backend.User, error)
	ChangePassword(ctx context.Context, sess *session.Session, req *ChangePasswordRequest) error
	UploadProfilePicture(ctx context.Context, sess *session.Session, filename string, file io.Reader) (*backend.User, error)
	ListUsers(ctx context.Context, sess *session.Session) ([]backend.User, error)
}

type service struct {
	backend Backend
	wizard  *wizard.Store
}

func NewService(b Backend, w *wizard.Store) Service {
	return &service{backend: b, wizard: w}
}

// Login exchanges credentials for a token and stores token and user together
// in the session. The token is decoded for routing only; the backend keeps
// validating it on every call.
func (s *service) Login(ctx context.Context, sess *session.Session, req *LoginRequest) (*LoginResponse, error) {
	resp, err := s.backend.Login(ctx, backend.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		if backend.IsKind(err, backend.KindUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrInvalidCredentials
	}

	sess.SetIdentity(resp.Token, resp.User)
	logger.GetDefault().LogAuthSuccess(ctx, sess.UserID(), sess.Role())

	return &LoginResponse{
		User:       resp.User,
		Role:       sess.Role(),
		RedirectTo: sess.HomePath(),
	}, nil
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*backend.User, error) {
	return s.backend.Register(ctx, backend.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
}

// Logout forgets the identity and any half-finished booking
func (s *service) Logout(ctx context.Context, sess *session.Session) error {
	sess.ClearIdentity()
	return s.wizard.Clear(ctx, sess.ID)
}

func (s *service) Me(sess *session.Session) *MeResponse {
	return &MeResponse{
		Authenticated: sess.IsAuthenticated(),
		User:          sess.User,
		Role:          sess.Role(),
		IsAdmin:       sess.IsAdminHint(),
		HomePath:      sess.HomePath(),
	}
}

func (s *service) UpdateProfile(ctx context.Context, sess *session.Session, req *UpdateProfileRequest) (*backend.User, error) {
	user, err := s.backend.UpdateProfile(ctx, sess.Token, backend.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return nil, err
	}
	sess.SetIdentity(sess.Token, *user)
	return user, nil
}

func (s *service) ChangePassword(ctx context.Context, sess *session.Session, req *ChangePasswordRequest) error {
	return s.backend.ChangePassword(ctx, sess.Token, backend.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}

func (s *service) UploadProfilePicture(ctx context.Context, sess *session.Session, filename string, file io.Reader) (*backend.User, error) {
	user, err := s.backend.UploadProfilePicture(ctx, sess.Token, filename, file)
	if err != nil {
		return nil, err
	}
	sess.SetIdentity(sess.Token, *user)
	return user, nil
}

func (s *service) ListUsers(ctx context.Context, sess *session.Session) ([]backend.User, error) {
	return s.backend.ListUsers(ctx, sess.Token)
}

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gameauth/internal/common"
	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/dmitrijs2005/gameauth/internal/server/models"
	"github.com/dmitrijs2005/gameauth/internal/server/passwords"
)

// AccountService is the business surface the dispatcher drives.
type AccountService interface {
	Register(ctx context.Context, userName, password string) (*models.Account, error)
	Login(ctx context.Context, userName, password string) (*models.Account, error)
	GetProfile(ctx context.Context, accountID int64) (*models.ProfileView, error)
}

// Response is the wire shape of every reply. User is a *models.Account for
// register and login and a *models.ProfileView for profile.
type Response struct {
	Success bool   `json:"success"`
	User    any    `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failure builds the response for err together with its HTTP status.
func Failure(err error) (int, *Response) {
	status, msg := Status(err)
	return status, &Response{Success: false, Error: msg}
}

// Status maps an error to an HTTP status code and a client-safe message.
func Status(err error) (int, string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, passwords.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password too long"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, msgCredentialsRequired
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrorUnsupportedAction):
		return http.StatusMethodNotAllowed, "Method not allowed"
	default:
		return http.StatusServiceUnavailable, "Service unavailable"
	}
}

// Dispatcher runs typed requests against an AccountService.
type Dispatcher struct {
	accounts AccountService
	logger   logging.Logger
}

func NewDispatcher(accounts AccountService, logger logging.Logger) *Dispatcher {
	return &Dispatcher{accounts: accounts, logger: logger.With("module", "dispatcher")}
}

// Dispatch executes req and returns the HTTP status with the response body.
// Unexpected failures are logged with their cause; the client only sees the
// fixed message for the error kind.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (int, *Response) {
	user, err := d.run(ctx, req)
	if err != nil {
		status, resp := Failure(err)
		if status >= http.StatusInternalServerError {
			d.logger.Error(ctx, "request failed", "action", req.Action(), "error", err)
		} else {
			d.logger.Info(ctx, "request rejected", "action", req.Action(), "status", status)
		}
		return status, resp
	}
	return http.StatusOK, &Response{Success: true, User: user}
}

// Handle decodes env and dispatches it in one step.
func (d *Dispatcher) Handle(ctx context.Context, env Envelope, headerUserID string) (int, *Response) {
	req, err := env.Decode(headerUserID)
	if err != nil {
		return Failure(err)
	}
	return d.Dispatch(ctx, req)
}

func (d *Dispatcher) run(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case RegisterRequest:
		account, err := d.accounts.Register(ctx, r.UserName, r.Password)
		if err != nil {
			return nil, err
		}
		d.logger.Info(ctx, "account registered", "account_id", account.ID)
		return account, nil
	case LoginRequest:
		account, err := d.accounts.Login(ctx, r.UserName, r.Password)
		if err != nil {
			return nil, err
		}
		return account, nil
	case ProfileRequest:
		profile, err := d.accounts.GetProfile(ctx, r.UserID)
		if err != nil {
			return nil, err
		}
		return profile, nil
	default:
		return nil, common.ErrorUnsupportedAction
	}
}

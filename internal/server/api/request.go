// Package api turns the loosely shaped action envelope accepted by the
// transports into typed requests, runs them against the account service and
// maps outcomes to responses. HTTP and gRPC share it.
package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gameauth/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionProfile  = "profile"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Envelope is the wire shape of every request. Which fields matter depends
// on Action.
type Envelope struct {
	Action   string `json:"action"`
	UserName string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	UserID   *int64 `json:"userId,omitempty"`
}

// Request is one of RegisterRequest, LoginRequest or ProfileRequest.
type Request interface {
	Action() string
}

type RegisterRequest struct {
	UserName string `validate:"required"`
	Password string `validate:"required"`
}

func (RegisterRequest) Action() string { return ActionRegister }

type LoginRequest struct {
	UserName string `validate:"required"`
	Password string `validate:"required"`
}

func (LoginRequest) Action() string { return ActionLogin }

type ProfileRequest struct {
	UserID int64 `validate:"gt=0"`
}

func (ProfileRequest) Action() string { return ActionProfile }

// ValidationError names what was wrong with a request. It matches
// common.ErrorValidation under errors.Is.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == common.ErrorValidation }

const (
	msgCredentialsRequired = "Username and password required"
	msgUserIDRequired      = "User id required"
	msgInvalidBody         = "Invalid request body"
)

// InvalidBody is returned by transports when the envelope cannot be decoded.
func InvalidBody() error {
	return &ValidationError{Message: msgInvalidBody}
}

// Decode picks the typed request for e.Action and validates it. headerUserID
// is the caller identity from transport metadata (X-User-Id); it is only
// consulted for profile requests that carry no userId.
func (e Envelope) Decode(headerUserID string) (Request, error) {
	var req Request
	var msg string

	switch e.Action {
	case ActionRegister:
		req, msg = RegisterRequest{UserName: e.UserName, Password: e.Password}, msgCredentialsRequired
	case ActionLogin:
		req, msg = LoginRequest{UserName: e.UserName, Password: e.Password}, msgCredentialsRequired
	case ActionProfile:
		id, err := e.profileID(headerUserID)
		if err != nil {
			return nil, err
		}
		req, msg = ProfileRequest{UserID: id}, msgUserIDRequired
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupportedAction, e.Action)
	}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return nil, &ValidationError{Message: msg, Fields: fields}
		}
		return nil, &ValidationError{Message: msg}
	}
	return req, nil
}

func (e Envelope) profileID(headerUserID string) (int64, error) {
	if e.UserID != nil {
		return *e.UserID, nil
	}
	headerUserID = strings.TrimSpace(headerUserID)
	if headerUserID == "" {
		return 0, &ValidationError{Message: msgUserIDRequired}
	}
	id, err := strconv.ParseInt(headerUserID, 10, 64)
	if err != nil {
		return 0, &ValidationError{Message: msgUserIDRequired, Fields: []string{common.UserIDHeaderName}}
	}
	return id, nil
}

package bizerror

import (
	"errors"
	"net/http"
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("forbidden")

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountInactive = errors.New("user account is inactive")
var ErrEmailExisted = errors.New("user already exists")

var ErrWorkflowNotFound = errors.New("workflow not found")
var ErrWorkflowNotActive = errors.New("workflow must be active to create instances")
var ErrInstanceNotPending = errors.New("instance must be in PENDING status to start")
var ErrInstanceFinished = errors.New("cannot cancel completed or already cancelled instance")

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

package bizerror

import (
	"encoding/json"
	"errors"
	"flowdesk/misc"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = errors.New(fmt.Sprintf("%s", ret))
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	logrus.WithFields(logrus.Fields{"method": c.Request.Method, "url": c.Request.RequestURI}).Error(err)

	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	if bizErr, ok := genericErr.(BizError); ok {
		respond := bizErr.Respond()
		c.JSON(respond.Status, misc.Failure(respond.Message))
		c.Abort()
		return
	}

	// bad request: io.EOF (no body)
	if errors.Is(genericErr, io.EOF) {
		c.JSON(http.StatusBadRequest, misc.Failure("body not found"))
		c.Abort()
		return
	}
	// bad request: json syntax error
	if syntaxErr, ok := genericErr.(*json.SyntaxError); ok {
		c.JSON(http.StatusBadRequest, misc.Failure("invalid body format: "+syntaxErr.Error()))
		c.Abort()
		return
	}
	// validation failed
	if validationErr, ok := genericErr.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, misc.Failure(validationErr.Error()))
		c.Abort()
		return
	}

	if errors.Is(genericErr, ErrUnauthenticated) || errors.Is(genericErr, ErrInvalidCredentials) ||
		errors.Is(genericErr, ErrAccountInactive) {
		c.JSON(http.StatusUnauthorized, misc.Failure(genericErr.Error()))
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrForbidden) {
		c.JSON(http.StatusForbidden, misc.Failure("access forbidden"))
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrEmailExisted) || errors.Is(genericErr, ErrWorkflowNotFound) ||
		errors.Is(genericErr, ErrWorkflowNotActive) ||
		errors.Is(genericErr, ErrInstanceNotPending) || errors.Is(genericErr, ErrInstanceFinished) {
		c.JSON(http.StatusBadRequest, misc.Failure(genericErr.Error()))
		c.Abort()
		return
	}
	if errors.Is(genericErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, misc.Failure("record not found"))
		c.Abort()
		return
	}

	body := misc.Failure(err.Error())
	if gin.Mode() != gin.ReleaseMode {
		body.Error = string(debug.Stack())
	}
	c.JSON(http.StatusInternalServerError, body)
	c.Abort()
}

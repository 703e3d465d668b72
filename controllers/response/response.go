// Package response writes the {success, message, data} envelope shared by
// every JSON endpoint.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/Technobabies/meli-ecommerce-orders-api/validators"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Failure(c *gin.Context, status int, message string, data interface{}) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Data: data})
}

// Status classifies an error returned by a service or by request binding.
func Status(err error) int {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrMaxCardsExceeded), errors.Is(err, services.ErrCardExpired),
		errors.Is(err, services.ErrDefaultCardConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrDuplicateCardNumber):
		return http.StatusBadRequest
	case validators.Messages(err) != nil:
		return http.StatusBadRequest
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with the status Status picks for it. Unclassified errors
// are logged and hidden behind a generic message.
func Error(c *gin.Context, err error) {
	status := Status(err)
	switch {
	case status == http.StatusInternalServerError:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		Failure(c, status, "An unexpected error occurred", nil)
	case validators.Messages(err) != nil:
		Invalid(c, validators.Messages(err))
	default:
		Failure(c, status, err.Error(), nil)
	}
}

// BadRequest is used for request bodies that could not be decoded or path
// parameters that are not valid.
func BadRequest(c *gin.Context, message string) {
	Failure(c, http.StatusBadRequest, message, nil)
}

// Invalid writes a validation failure with its field → message map.
func Invalid(c *gin.Context, fields map[string]string) {
	Failure(c, http.StatusBadRequest, "Validation failed", fields)
}

// ParamUUID reads a UUID path parameter, answering 400 when it is malformed.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		BadRequest(c, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Bind decodes the JSON body into req and writes a 400 envelope when that
// fails. It reports whether the handler should continue.
func Bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := validators.Messages(err); fields != nil {
			Invalid(c, fields)
			return false
		}
		BadRequest(c, "Malformed request body")
		return false
	}
	return true
}

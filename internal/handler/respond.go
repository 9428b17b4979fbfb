package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/flicky/carcare-storefront/internal/checkout"
	"github.com/flicky/carcare-storefront/internal/dto"
)

var registerTagNames sync.Once

// useJSONFieldNames makes binding errors report the json name of a field.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, dto.OK(data))
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.Fail(msg))
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, "internal server error")
}

func respondFieldErrors(c *gin.Context, fields checkout.FieldErrors) {
	env := dto.Fail("validation failed")
	env.Fields = fields
	c.JSON(http.StatusUnprocessableEntity, env)
}

// respondBindError answers 422 with per-field messages for validation
// failures and 400 for bodies that could not be decoded at all.
func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	fields := make(checkout.FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		name := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "email":
			fields[name] = "Please enter a valid email address"
		case "min":
			fields[name] = name + " must be at least " + fe.Param()
		default:
			fields[name] = name + " is invalid"
		}
	}
	respondFieldErrors(c, fields)
}

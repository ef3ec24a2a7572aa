package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/chatia-cau/ofertas/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Fault is an error with an HTTP status and a response detail. Any other
// error reaching the boundary is reported as a 500 with its message.
type Fault struct {
	Status int
	Detail any
	Err    error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return http.StatusText(f.Status)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// ValidationIssue mirrors the entries FastAPI clients already parse.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func unprocessable(err error, issues ...ValidationIssue) *Fault {
	return &Fault{Status: http.StatusUnprocessableEntity, Detail: issues, Err: err}
}

// bindFault turns a gin binding error into a 422 fault. source is "body"
// or "query".
func bindFault(source string, err error) *Fault {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, ValidationIssue{
				Loc:  []string{source, fe.Field()},
				Msg:  validationMessage(fe),
				Type: "value_error." + fe.Tag(),
			})
		}
		return unprocessable(err, issues...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return unprocessable(err, ValidationIssue{
			Loc:  []string{source, typeErr.Field},
			Msg:  "expected " + typeErr.Type.String(),
			Type: "type_error",
		})
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return unprocessable(err, ValidationIssue{
			Loc:  []string{source},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		})
	}

	if errors.Is(err, io.EOF) {
		return unprocessable(err, ValidationIssue{
			Loc:  []string{source},
			Msg:  "field required",
			Type: "value_error.missing",
		})
	}

	return unprocessable(err, ValidationIssue{
		Loc:  []string{source},
		Msg:  err.Error(),
		Type: "value_error.jsondecode",
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gte":
		return "ensure this value is greater than or equal to " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// Wrap adapts a handler returning a payload or an error to gin. It is the
// only place where faults become HTTP responses.
func Wrap[T any](fn func(c *gin.Context) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := fn(c)
		if err != nil {
			writeFault(c, err)
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}

func writeFault(c *gin.Context, err error) {
	_ = c.Error(err)

	var fault *Fault
	if errors.As(err, &fault) {
		c.JSON(fault.Status, gin.H{"detail": fault.Detail})
		return
	}

	logger.Error(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}

// RegisterValidation makes validation errors report JSON/form field names.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
}

package pkg

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sabasm/user/internal/domain"
)

// Response is the standard JSON envelope for API responses.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ValidationErrorResponse is the JSON envelope for validation error responses.
type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Success sends a 200 JSON response with the given data.
func Success(c *gin.Context, data any) {
	respond(c, http.StatusOK, data)
}

// Created sends a 201 JSON response with the newly created resource.
func Created(c *gin.Context, data any) {
	respond(c, http.StatusCreated, data)
}

// List sends a 200 JSON response carrying one page of results.
func List[T any](c *gin.Context, page *domain.PageResult[T]) {
	respond(c, http.StatusOK, page)
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, Response{
		Code:    status,
		Message: "success",
		Data:    data,
	})
}

// Error sends a JSON error response. A *domain.AppError is mapped to its HTTP
// status and message; anything else becomes a 500. Server-side failures are
// also recorded on c so the request logger reports the underlying cause.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	var appErr *domain.AppError
	msg := domain.ErrInternal.Message
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	c.JSON(status, Response{
		Code:    status,
		Message: msg,
		Data:    nil,
	})
}

// BindAndValidate binds the request body to obj and validates it.
// On failure it sends a 400 response and returns false.
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		validationErrorWithType(c, err, obj)
		return false
	}
	return true
}

// validationErrorWithType sends a 400 response. Field names come from JSON
// tags when obj is a struct.
func validationErrorWithType(c *gin.Context, err error, obj any) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Malformed body or wrong types; the decoder message is not exposed.
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: "bad request",
			Data:    nil,
		})
		return
	}

	jsonTags := buildJSONTagMap(obj)

	fieldErrors := make(map[string]string, len(ve))
	for _, fe := range ve {
		name, ok := jsonTags[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.Field())
		}
		fieldErrors[name] = fieldMessage(fe)
	}

	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "validation error",
		Errors:  fieldErrors,
	})
}

// fieldMessage turns a validator failure into a short sentence.
func fieldMessage(fe validator.FieldError) string {
	if fe.Tag() == "max" {
		return "Must be at most " + fe.Param() + " characters"
	}
	if fe.Param() != "" {
		return "Failed " + fe.Tag() + "=" + fe.Param()
	}
	return "Failed " + fe.Tag()
}

// buildJSONTagMap returns a map from struct field name to its JSON tag name.
func buildJSONTagMap(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if name := parseJSONTagName(f.Tag.Get("json")); name != "" {
			m[f.Name] = name
		}
	}
	return m
}

func parseJSONTagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

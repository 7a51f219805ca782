package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskpilot/internal/domain"
	"taskpilot/pkg/apierrors"
)

// writeError maps a service error onto a status code and a translated body.
func (h *Handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	lang := langFrom(c)

	var (
		status = http.StatusInternalServerError
		key    = apierrors.MsgInternalError
		data   map[string]any
	)

	switch {
	case errors.Is(err, domain.ErrParse):
		status, key = http.StatusBadRequest, apierrors.MsgInvalidDeadline
	case errors.Is(err, domain.ErrValidation):
		status, key = http.StatusBadRequest, apierrors.MsgValidationFailed
		data = map[string]any{"Detail": validationDetail(err)}
	case errors.Is(err, domain.ErrConflict):
		status, key = http.StatusConflict, apierrors.MsgUsernameTaken
	case errors.Is(err, domain.ErrAuthFailure):
		status, key = http.StatusUnauthorized, apierrors.MsgInvalidCredentials
	case errors.Is(err, domain.ErrNotFound):
		status, key = http.StatusNotFound, apierrors.MsgNotFound
	case errors.Is(err, domain.ErrDependency):
		status, key = http.StatusBadGateway, apierrors.MsgSentimentUnavailable
		loggerFrom(c, h.logger).WithError(err).Warn("dependency failure")
	default:
		loggerFrom(c, h.logger).WithError(err).Error("request failed")
	}

	c.AbortWithStatusJSON(status, h.catalog.CreateError(status, key, lang, data))
}

// bindError reports the first offending field of a request body.
func (h *Handler) bindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	lang := langFrom(c)

	if field := bindErrorField(err); field != "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, h.catalog.CreateError(
			http.StatusBadRequest, apierrors.MsgInvalidField, lang, map[string]any{"Field": field}))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, h.catalog.CreateError(
		http.StatusBadRequest, apierrors.MsgInvalidPayload, lang, nil))
}

func bindErrorField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validator report fields by their json names.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}

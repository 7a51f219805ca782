package apierrors

import (
	"errors"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"taskpilot/pkg/translator"
)

// JsonErr is the body written for every failed request.
type JsonErr struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// Catalog resolves message keys against a translation bundle.
type Catalog struct {
	bundle *i18n.Bundle
	logger logrus.FieldLogger
}

func NewCatalog(bundle *i18n.Bundle, logger logrus.FieldLogger) *Catalog {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Catalog{bundle: bundle, logger: logger}
}

// CreateError builds a JsonErr with a translated message.
func (c *Catalog) CreateError(code int, msgKey, lang string, data map[string]any) JsonErr {
	return JsonErr{Code: code, Message: c.Message(msgKey, lang, data)}
}

// Message translates msgKey into lang, falling back to English and then to
// the key itself.
func (c *Catalog) Message(msgKey, lang string, data map[string]any) string {
	l := i18n.NewLocalizer(c.bundle, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    msgKey,
		TemplateData: data,
	})
	if err == nil {
		return msg
	}

	entry := c.logger.WithFields(logrus.Fields{
		"lang":       lang,
		"message_id": msgKey,
	}).WithError(err)

	// a missing translation still yields the default language text
	var notFound *i18n.MessageNotFoundErr
	if msg != "" && errors.As(err, &notFound) {
		entry.Debug("translation missing, using default language")
		return msg
	}
	entry.Warn("translation not found")
	return msgKey
}

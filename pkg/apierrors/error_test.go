package apierrors_test

import (
	"testing"
	"testing/fstest"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"taskpilot/pkg/apierrors"
	"taskpilot/pkg/translator"
)

func newTestCatalog(t *testing.T) *apierrors.Catalog {
	t.Helper()

	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.English,
		&i18n.Message{ID: "test_key", Other: "Test message"},
		&i18n.Message{ID: "with_field", Other: "Bad field: {{.Field}}"},
	))
	require.NoError(t, bundle.AddMessages(language.French,
		&i18n.Message{ID: "test_key", Other: "Message de test"},
	))
	return apierrors.NewCatalog(bundle, nil)
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := newTestCatalog(t).CreateError(400, "test_key", translator.LanguageEn, nil)
	assert.Equal(t, 400, err.Code)
	assert.Equal(t, "Test message", err.Message)
}

func TestMessage_Translates(t *testing.T) {
	msg := newTestCatalog(t).Message("test_key", translator.LanguageFr, nil)
	assert.Equal(t, "Message de test", msg)
}

func TestMessage_FallsBackToEnglish(t *testing.T) {
	msg := newTestCatalog(t).Message("with_field", translator.LanguageFr, map[string]any{"Field": "title"})
	assert.Equal(t, "Bad field: title", msg)
}

func TestMessage_IncompleteLocaleUsesEnglishTemplate(t *testing.T) {
	bundle, err := translator.New(fstest.MapFS{
		"locales/en.toml": {Data: []byte(`invalidField = "Invalid or missing field: {{.Field}}"`)},
		"locales/fr.toml": {Data: []byte(`notFound = "Ressource introuvable"`)},
	}, "locales")
	require.NoError(t, err)

	msg := apierrors.NewCatalog(bundle, nil).Message(apierrors.MsgInvalidField, translator.LanguageFr, map[string]any{"Field": "deadline"})
	assert.Equal(t, "Invalid or missing field: deadline", msg)
}

func TestMessage_FallbackToKey(t *testing.T) {
	msg := newTestCatalog(t).Message("unknown_key", translator.LanguageEn, nil)
	assert.Equal(t, "unknown_key", msg)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := newTestCatalog(t).CreateError(500, "test_key", translator.LanguageEn, nil)
	assert.Equal(t, "Code: 500, Message: Test message", err.Error())
}

func TestDefaultBundle_TemplatedMessages(t *testing.T) {
	bundle, err := translator.Default()
	require.NoError(t, err)
	catalog := apierrors.NewCatalog(bundle, nil)

	assert.Equal(t, "Invalid or missing field: deadline",
		catalog.Message(apierrors.MsgInvalidField, translator.LanguageEn, map[string]any{"Field": "deadline"}))
	assert.Equal(t, "Ce nom d'utilisateur existe déjà",
		catalog.Message(apierrors.MsgUsernameTaken, translator.LanguageFr, nil))
}

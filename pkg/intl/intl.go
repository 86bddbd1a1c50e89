package intl

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

//go:embed locales/*.toml
var localeFiles embed.FS

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var SupportedLanguages = []SupportedLanguage{
	{
		Code:        "vi",
		VerboseName: "Tiếng Việt",
		Tag:         language.Vietnamese,
	},
	{
		Code:        "en",
		VerboseName: "English",
		Tag:         language.English,
	},
}

var DefaultLanguage = language.Vietnamese

// ParseLanguage maps a code or Accept-Language style string to a supported
// tag, defaulting to Vietnamese.
func ParseLanguage(code string) language.Tag {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultLanguage
	}
	tags := make([]language.Tag, len(SupportedLanguages))
	for i, l := range SupportedLanguages {
		tags[i] = l.Tag
	}
	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(language.Make(code))
	if conf == language.No {
		return DefaultLanguage
	}
	return tags[idx]
}

// LoadBundle returns a bundle with the embedded vi and en messages.
func LoadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	files, err := fs.Glob(localeFiles, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		data, err := localeFiles.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

func MustLoadBundle() *i18n.Bundle {
	b, err := LoadBundle()
	if err != nil {
		panic(err)
	}
	return b
}

// Translator is a localizer bound to one language. Missing messages fall
// back to the message id.
type Translator struct {
	localizer *i18n.Localizer
	lang      language.Tag
}

func NewTranslator(bundle *i18n.Bundle, lang string) *Translator {
	tag := ParseLanguage(lang)
	return &Translator{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		lang:      tag,
	}
}

func (t *Translator) Language() language.Tag { return t.lang }

func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Error renders err for a toast: business errors carry the server text
// verbatim, validation errors use their locale key, everything else is the
// generic failure message.
func (t *Translator) Error(err error) string {
	if err == nil {
		return ""
	}
	be, ok := serrors.As(err)
	if !ok {
		return t.T("Errors.Generic", nil)
	}
	switch be.Kind {
	case serrors.KindBusiness:
		if be.Message != "" {
			return be.Message
		}
		return t.T("Errors.Generic", nil)
	case serrors.KindValidation:
		if be.LocaleKey != "" {
			if msg := t.T(be.LocaleKey, map[string]any{"Field": be.Field}); msg != be.LocaleKey {
				return msg
			}
		}
		if be.Message != "" {
			return be.Message
		}
	}
	return t.T("Errors.Generic", nil)
}

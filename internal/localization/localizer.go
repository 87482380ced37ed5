package localization

import (
	"embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	MissingEntityKey              = "Repository.Delete.MissingEntity"
	SoftDeletionNotIDeleteableKey = "Repository.Delete.SoftDeletionNotIDeleteable"
	EntityNotFoundKey             = "Repository.Find.EntityNotFound"
)

//go:embed locales/*.yaml
var locales embed.FS

// Localizer resolves message keys to user facing text.
type Localizer interface {
	Get(key string, args ...interface{}) string
}

type catalogLocalizer struct {
	messages map[string]string
}

// NewLocalizer loads the embedded catalog for language and, when overridePath is set,
// layers the messages of that yaml file on top of it. Unknown languages fall back to English.
func NewLocalizer(language, overridePath string) (Localizer, error) {
	data, err := locales.ReadFile(fmt.Sprintf("locales/%s.yaml", language))
	if err != nil {
		data, err = locales.ReadFile("locales/en.yaml")
		if err != nil {
			return nil, err
		}
	}
	l := &catalogLocalizer{messages: map[string]string{}}
	if err := l.load(data); err != nil {
		return nil, err
	}
	if overridePath != "" {
		override, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, err
		}
		if err := l.load(override); err != nil {
			return nil, errors.Wrapf(err, "invalid localization file %s", overridePath)
		}
	}
	return l, nil
}

// Default returns the English catalog.
func Default() Localizer {
	l, err := NewLocalizer("en", "")
	if err != nil {
		panic(err)
	}
	return l
}

func (l *catalogLocalizer) Get(key string, args ...interface{}) string {
	message, ok := l.messages[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(message, args...)
	}
	return message
}

func (l *catalogLocalizer) load(data []byte) error {
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	flatten("", tree, l.messages)
	return nil
}

func flatten(prefix string, tree map[string]interface{}, out map[string]string) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]interface{}:
			flatten(key, v, out)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

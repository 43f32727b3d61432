package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	filePrefix = "messages_"
	fileSuffix = ".yaml"
)

//go:embed messages/*.yaml
var defaultMessages embed.FS

// builds the default bundle, layering messages found in dir (if any) over the embedded ones.
// the fallback locale must have a catalog, otherwise every miss would surface raw keys.
func Load(fallback language.Tag, dir string) (*Bundle, error) {
	embedded, err := fs.Sub(defaultMessages, "messages")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded messages: %w", err)
	}

	messages, err := LoadFS(embedded)
	if err != nil {
		return nil, err
	}

	bundle := NewBundle(fallback, messages)

	if dir != "" {
		extra, err := LoadFS(os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("failed to load messages from %s: %w", dir, err)
		}

		bundle = bundle.With(extra)
	}

	if !bundle.Supports(fallback) {
		return nil, fmt.Errorf("no messages for default locale %s", fallback)
	}

	return bundle, nil
}

// reads every messages_<tag>.yaml file at the root of fsys.
// each file is a flat mapping of message key to template.
func LoadFS(fsys fs.FS) (map[string]map[string]string, error) {
	files, err := fs.Glob(fsys, filePrefix+"*"+fileSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to list message files: %w", err)
	}

	messages := make(map[string]map[string]string, len(files))

	for _, name := range files {
		raw := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), filePrefix), fileSuffix)

		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid locale in file name %s: %w", name, err)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		var templates map[string]string
		if err := yaml.Unmarshal(data, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		messages[tag.String()] = templates
	}

	return messages, nil
}

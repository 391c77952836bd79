// Package translations loads the embedded per-language string tables.
package translations

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultLanguage = "en"

// load reads translations/${language}.yml and returns its string table.
func load(allTranslations embed.FS, language string) (map[string]string, error) {
	if language == "" {
		language = defaultLanguage
	}

	t := make(map[string]string)
	file := fmt.Sprintf("translations/%v.yml", language)

	b, err := allTranslations.ReadFile(file)
	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	err = yaml.Unmarshal(b, &t)
	if err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// Load returns the string table for the requested language merged over the
// default language, so strings that are not yet translated still show
// visible text in some language (instead of an empty string).
func Load(allTranslations embed.FS, language string) (map[string]string, error) {
	t, err := load(allTranslations, defaultLanguage)
	if err != nil {
		return t, fmt.Errorf("failed to load default translations %v: %w", defaultLanguage, err)
	}

	switch language {
	case "":
		fallthrough
	case defaultLanguage:
		return t, nil
	default:
		break
	}

	u, err := load(allTranslations, language)
	if err != nil {
		return t, fmt.Errorf("failed to load specified translations %v: %w", language, err)
	}

	// merge the two maps
	for k, v := range u {
		t[k] = v
	}

	return t, nil
}

// Package themes loads the embedded color tables.
package themes

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultTheme = "light"

// load reads themes/${theme}.yml and returns its color table. Values are
// tview color tag strings, such as "yellow" or "#87ceeb".
func load(allThemes embed.FS, theme string) (map[string]string, error) {
	if theme == "" {
		theme = defaultTheme
	}

	t := make(map[string]string)
	file := fmt.Sprintf("themes/%v.yml", theme)

	b, err := allThemes.ReadFile(file)
	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	err = yaml.Unmarshal(b, &t)
	if err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// Load returns the color table for the requested theme merged over the
// default theme, so keys that are not set in the requested theme still
// render with a visible color.
func Load(allThemes embed.FS, theme string) (map[string]string, error) {
	t, err := load(allThemes, defaultTheme)
	if err != nil {
		return t, fmt.Errorf("failed to load default theme %v: %w", defaultTheme, err)
	}

	switch theme {
	case "":
		fallthrough
	case defaultTheme:
		return t, nil
	default:
		break
	}

	u, err := load(allThemes, theme)
	if err != nil {
		return t, fmt.Errorf("failed to load specified theme %v: %w", theme, err)
	}

	// merge the two maps
	for k, v := range u {
		t[k] = v
	}

	return t, nil
}

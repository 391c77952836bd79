package models

// Language is the UI language for translations and advisory reports.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
	LanguageJA Language = "ja"
)

// Theme selects one of the embedded color tables.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Currency is a display symbol only - no conversion math anywhere.
type Currency string

const (
	CurrencyCNY Currency = "CNY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyJPY Currency = "JPY"
	CurrencyGBP Currency = "GBP"
)

// CurrencySymbols maps each supported currency to its display symbol.
var CurrencySymbols = map[Currency]string{
	CurrencyCNY: "¥",
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyJPY: "¥",
	CurrencyGBP: "£",
}

// Symbol returns the display symbol for c, defaulting to the CNY symbol for
// unknown values so older settings files still render something sensible.
func (c Currency) Symbol() string {
	if s, ok := CurrencySymbols[c]; ok {
		return s
	}

	return CurrencySymbols[CurrencyCNY]
}

// AppSettings is the flat user preference object. The contents of this will
// be saved to disk after every change, and merged over DefaultSettings on
// load so that older or partial files neither crash nor drop fields that
// were added later.
type AppSettings struct {
	APIKey   string   `yaml:"apiKey" json:"apiKey"`
	Language Language `yaml:"language" json:"language"`
	Theme    Theme    `yaml:"theme" json:"theme"`
	Currency Currency `yaml:"currency" json:"currency"`
}

// DefaultSettings returns the settings used on first run and as the merge
// base for every load.
func DefaultSettings() AppSettings {
	return AppSettings{
		APIKey:   "",
		Language: LanguageZH,
		Theme:    ThemeLight,
		Currency: CurrencyCNY,
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	c "github.com/duxiu-index/duxiu-tui/constants"
	m "github.com/duxiu-index/duxiu-tui/models"
	"github.com/duxiu-index/duxiu-tui/store"

	"github.com/rivo/tview"
)

// settings option lists, in dropdown order
//
//nolint:gochecknoglobals
var (
	languageOptions = []m.Language{m.LanguageZH, m.LanguageEN, m.LanguageJA}
	themeOptions    = []m.Theme{m.ThemeLight, m.ThemeDark}
	currencyOptions = []m.Currency{m.CurrencyCNY, m.CurrencyUSD, m.CurrencyEUR, m.CurrencyJPY, m.CurrencyGBP}
)

func optionIndex[T comparable](options []T, current T) int {
	for i := range options {
		if options[i] == current {
			return i
		}
	}

	return 0
}

// saveSettings persists the current settings and reports the result in the
// settings page's status line. Persistence failures are shown but never
// fatal; the in-memory settings stay authoritative for the session.
func saveSettings() {
	err := DX.Files.SaveSettings(DX.Settings)
	if err != nil {
		setSettingsStatus(DX.Colors["StatusTextError"], err.Error())
		return
	}

	setSettingsStatus(DX.Colors["StatusTextPassive"], DX.T["SettingsSavedNote"])
}

func setSettingsStatus(color, text string) {
	if DX.StatusText == nil {
		return
	}

	DX.StatusText.SetText(fmt.Sprintf("%v%v%v", color, text, c.ResetStyle))
}

// exportBackup writes a full backup (history + settings) to a timestamped
// file in the data directory.
func exportBackup() {
	path, err := DX.Files.WriteBackupFile(DX.Store, DX.Settings, DX.Store.Now())
	if err != nil {
		setSettingsStatus(DX.Colors["StatusTextError"], err.Error())
		return
	}

	setSettingsStatus(DX.Colors["StatusTextPassive"],
		fmt.Sprintf("%v: %v", DX.T["SettingsExportSuccess"], path))
}

// importBackup validates the file at path and, after confirmation, replaces
// the entire history and merges the backup's settings over the current ones.
func importBackup(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}

	b, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		setSettingsStatus(DX.Colors["StatusTextError"],
			fmt.Sprintf("%v: %v", DX.T["SettingsImportError"], err.Error()))

		return
	}

	recs, settings, err := store.ParseBackup(b, DX.Settings)
	if err != nil {
		setSettingsStatus(DX.Colors["StatusTextError"], DX.T["SettingsImportError"])
		return
	}

	promptConfirm(DX.T["SettingsImportConfirm"], func() {
		DX.Store.ReplaceHistory(recs)

		DX.Settings = settings
		saveSettings()

		updateCalculatorForm()
		updateTrendsPage()
		modifiedDraft()

		setSettingsStatus(DX.Colors["StatusTextPassive"],
			fmt.Sprintf("%v (%v)", DX.T["SettingsImportSuccess"], DX.T["SettingsRestartNote"]))

		DX.App.SetFocus(DX.SettingsForm)
	})
}

// promptClearAll confirms and wipes the entire history.
func promptClearAll() {
	promptConfirm(DX.T["SettingsClearDataConfirm"], func() {
		DX.Store.ClearAll()
		updateCalculatorForm()
		updateTrendsPage()
		modifiedDraft()
		setSettingsStatus(DX.Colors["StatusTextPassive"], DX.T["SettingsClearDataSuccess"])
		DX.App.SetFocus(DX.SettingsForm)
	})
}

// Completely rebuilds the settings form, safe to run repeatedly. Every change
// is persisted immediately; language and theme changes additionally need a
// restart to be picked up everywhere, which the status line says.
func updateSettingsForm() {
	DX.SettingsForm.Clear(true)
	DX.SettingsForm.SetTitle(fmt.Sprintf(" %v ", DX.T["SettingsTitle"]))

	languageLabels := make([]string, len(languageOptions))
	for i := range languageOptions {
		languageLabels[i] = string(languageOptions[i])
	}

	themeLabels := make([]string, len(themeOptions))
	for i := range themeOptions {
		themeLabels[i] = string(themeOptions[i])
	}

	currencyLabels := make([]string, len(currencyOptions))
	for i := range currencyOptions {
		currencyLabels[i] = fmt.Sprintf("%v %v", currencyOptions[i], currencyOptions[i].Symbol())
	}

	DX.SettingsForm.
		AddPasswordField(fmt.Sprintf("%v:", DX.T["SettingsAPIKeyLabel"]),
			DX.Settings.APIKey, 0, '*',
			func(text string) {
				DX.Settings.APIKey = strings.TrimSpace(text)
				saveSettings()
			}).
		AddDropDown(fmt.Sprintf("%v:", DX.T["SettingsLanguageLabel"]),
			languageLabels,
			optionIndex(languageOptions, DX.Settings.Language),
			func(_ string, optionIndex int) {
				if languageOptions[optionIndex] == DX.Settings.Language {
					return
				}

				DX.Settings.Language = languageOptions[optionIndex]
				saveSettings()
				setSettingsStatus(DX.Colors["StatusTextPassive"], DX.T["SettingsRestartNote"])
			}).
		AddDropDown(fmt.Sprintf("%v:", DX.T["SettingsThemeLabel"]),
			themeLabels,
			optionIndex(themeOptions, DX.Settings.Theme),
			func(_ string, optionIndex int) {
				if themeOptions[optionIndex] == DX.Settings.Theme {
					return
				}

				DX.Settings.Theme = themeOptions[optionIndex]
				saveSettings()
				setSettingsStatus(DX.Colors["StatusTextPassive"], DX.T["SettingsRestartNote"])
			}).
		AddDropDown(fmt.Sprintf("%v:", DX.T["SettingsCurrencyLabel"]),
			currencyLabels,
			optionIndex(currencyOptions, DX.Settings.Currency),
			func(_ string, optionIndex int) {
				if currencyOptions[optionIndex] == DX.Settings.Currency {
					return
				}

				DX.Settings.Currency = currencyOptions[optionIndex]
				saveSettings()
				updateResultView()
				updateTrendsPage()
			}).
		AddInputField(fmt.Sprintf("%v:", DX.T["SettingsImportPathLabel"]),
			"", 0, nil, nil).
		AddButton(DX.T["SettingsExportButton"], exportBackup).
		AddButton(DX.T["SettingsImportButton"], func() {
			item := DX.SettingsForm.GetFormItemByLabel(
				fmt.Sprintf("%v:", DX.T["SettingsImportPathLabel"]))
			if field, ok := item.(*tview.InputField); ok {
				importBackup(field.GetText())
			}
		}).
		AddButton(DX.T["SettingsClearData"], promptClearAll)

	DX.SettingsForm.SetBorder(true)
}

func getSettingsPage() *tview.Flex {
	DX.SettingsForm = tview.NewForm()

	updateSettingsForm()

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(DX.SettingsForm, 0, 1, true)
}

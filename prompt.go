package main

import "github.com/gdamore/tcell/v2"

// This file mainly contains functions for the hidden prompt page in the
// application.

// promptConfirm shows the modal with a yes/cancel choice. onConfirm runs only
// on an explicit yes; any other way out returns to the previous page.
func promptConfirm(text string, onConfirm func()) {
	// check if we are already prompting
	currentPage, _ := DX.Pages.GetFrontPage()
	if currentPage == PagePrompt {
		return
	}

	DX.PrevPage = currentPage

	DX.PromptBox.ClearButtons().AddButtons(
		[]string{
			DX.T["PromptYes"],
			DX.T["PromptCancel"],
		},
	).SetText(text).SetDoneFunc(
		func(buttonIndex int, buttonLabel string) {
			DX.Pages.SwitchToPage(DX.PrevPage)
			setBottomPageNavText()

			if buttonIndex == 0 {
				onConfirm()
			}
		},
	).SetBackgroundColor(tcell.ColorGoldenrod).
		SetTextColor(tcell.ColorBlack)

	DX.Pages.SwitchToPage(PagePrompt)
	DX.PromptBox.SetFocus(1)
	DX.App.SetFocus(DX.PromptBox)
}

func promptExit() {
	// check if we are already prompting
	currentPage, _ := DX.Pages.GetFrontPage()
	if currentPage == PagePrompt {
		return
	}

	DX.PrevPage = currentPage

	DX.PromptBox.ClearButtons().AddButtons(
		[]string{
			DX.T["PromptYes"],
			DX.T["PromptNo"],
		},
	).SetText(DX.T["PromptQuitText"]).SetDoneFunc(
		func(buttonIndex int, buttonLabel string) {
			switch buttonIndex {
			case 0:
				DX.App.Stop()
			default:
				DX.Pages.SwitchToPage(DX.PrevPage)
				setBottomPageNavText()

				return
			}
		},
	).SetBackgroundColor(tcell.ColorGoldenrod).
		SetTextColor(tcell.ColorBlack)

	DX.Pages.SwitchToPage(PagePrompt)
	DX.PromptBox.SetFocus(1)
	DX.App.SetFocus(DX.PromptBox)
}

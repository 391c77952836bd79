package main

import (
	"context"
	"fmt"

	"github.com/duxiu-index/duxiu-tui/advisor"
	c "github.com/duxiu-index/duxiu-tui/constants"
	"github.com/duxiu-index/duxiu-tui/lib"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
)

// updateAdvisorView renders the advisor page's idle state based on whether
// the current draft carries any data yet.
func updateAdvisorView() {
	if DX.AdvisorView == nil {
		return
	}

	if !lib.HasData(DX.Store.Draft()) {
		DX.AdvisorView.SetText(fmt.Sprintf("%v%v\n\n%v%v",
			DX.Colors["StatusNoData"],
			DX.T["AdvisorEmptyTitle"],
			DX.T["AdvisorEmptyDesc"],
			c.ResetStyle,
		))

		return
	}

	DX.AdvisorView.SetText(fmt.Sprintf("%v%v\n\n%v[%v]%v",
		DX.Colors["AdvisorText"],
		DX.T["AdvisorTitle"],
		DX.Colors["HelpAccent"],
		DX.T["AdvisorStartButton"],
		c.ResetStyle,
	))
}

// generateAdvice fires one advisory generation request for the current draft.
// Each invocation supersedes any in-flight one: the response handler drops
// its result unless its request ID is still the latest, so a slow early
// response can never overwrite a newer report.
func generateAdvice() {
	draft := DX.Store.Draft()

	if !lib.HasData(draft) {
		updateAdvisorView()
		return
	}

	reqID := uuid.NewString()
	DX.AdvisorRequestID = reqID

	DX.AdvisorView.SetText(fmt.Sprintf("%v%v\n\n%v%v%v",
		DX.Colors["AdvisorLoading"],
		DX.T["AdvisorLoadingTitle"],
		DX.Colors["StatusTextPassive"],
		DX.T["AdvisorLoadingDesc"],
		c.ResetStyle,
	))

	req := advisor.Request{
		Data:     draft,
		Result:   DX.Store.LiveResult(),
		Language: string(DX.Settings.Language),
		APIKey:   DX.Settings.APIKey,
	}

	go func() {
		text, err := DX.Advisor.Generate(context.Background(), req)

		DX.App.QueueUpdateDraw(func() {
			if DX.AdvisorRequestID != reqID {
				// superseded by a newer request
				return
			}

			if err != nil {
				msg := DX.T["AdvisorErrorGeneric"]
				if errors.Is(err, advisor.ErrMissingAPIKey) {
					msg = DX.T["AdvisorErrorAPIKey"]
				}

				DX.AdvisorView.SetText(fmt.Sprintf("%v%v%v",
					DX.Colors["StatusTextError"],
					msg,
					c.ResetStyle,
				))

				return
			}

			DX.AdvisorView.SetText(fmt.Sprintf("%v%v%v\n\n%v[%v]%v",
				DX.Colors["AdvisorText"],
				text,
				c.ResetStyle,
				DX.Colors["HelpAccent"],
				DX.T["AdvisorRegenerate"],
				c.ResetStyle,
			))
		})
	}()
}

func getAdvisorPage() *tview.Flex {
	DX.AdvisorView = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	DX.AdvisorView.SetBorder(true)
	DX.AdvisorView.SetTitle(fmt.Sprintf(" %v ", DX.T["AdvisorTitle"]))

	// enter starts (or restarts) a generation
	DX.AdvisorView.SetInputCapture(func(e *tcell.EventKey) *tcell.EventKey {
		if e.Key() == tcell.KeyEnter {
			generateAdvice()
			return nil
		}

		return e
	})

	updateAdvisorView()

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(DX.AdvisorView, 0, 1, true)
}

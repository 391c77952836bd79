package main

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"slices"

	c "github.com/duxiu-index/duxiu-tui/constants"
	"github.com/duxiu-index/duxiu-tui/store"

	"gopkg.in/yaml.v3"
)

// The undo buffer operates on draft snapshots only: the month being edited,
// the editing flag, and the draft's numbers. Saved history records are not
// part of it - deleting or re-saving a month is not undoable.

func initializeUndo() {
	b, err := snapshotBytes()
	if err != nil {
		// nothing sensible to do this early; start with an empty buffer
		DX.UndoBuffer = [][]byte{}
		DX.UndoBufferPos = 0

		return
	}

	DX.UndoBuffer = [][]byte{b}
	DX.UndoBufferPos = 0
}

// snapshotBytes serializes and compresses the current draft state.
func snapshotBytes() ([]byte, error) {
	b, err := yaml.Marshal(DX.Store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft snapshot: %w", err)
	}

	return compress(b)
}

// restoreFromUndoBuffer applies the snapshot at the current undo buffer
// position to the store and rebuilds the calculator form.
//
// warning: naively assumes that the DX.UndoBufferPos has already been set to
// a valid value.
func restoreFromUndoBuffer() {
	b, err := decompress(DX.UndoBuffer[DX.UndoBufferPos])
	if err != nil {
		setUndoStatus(DX.Colors["StatusTextError"], DX.T["UndoSnapshotError"])
		return
	}

	var snap store.Snapshot

	err = yaml.Unmarshal(b, &snap)
	if err != nil {
		setUndoStatus(DX.Colors["StatusTextError"], DX.T["UndoSnapshotError"])
		return
	}

	DX.Store.Restore(snap)

	updateCalculatorForm()
	DX.App.SetFocus(DX.CalculatorForm)
}

func setUndoStatus(color, text string) {
	DX.StatusText.SetText(fmt.Sprintf("%v%v%v", color, text, c.ResetStyle))
}

// moves 1 step backward in the DX.UndoBuffer
func undoDraft() {
	undoBufferLen := len(DX.UndoBuffer)
	newUndoBufferPos := DX.UndoBufferPos - 1

	if newUndoBufferPos < 0 {
		// nothing to undo - at beginning of DX.UndoBuffer
		setUndoStatus(DX.Colors["StatusTextPassive"], fmt.Sprintf(
			"%v [%v/%v]",
			DX.T["UndoNothingToUndo"],
			DX.UndoBufferPos+1,
			undoBufferLen,
		))

		return
	}

	DX.UndoBufferPos = newUndoBufferPos

	restoreFromUndoBuffer()

	setUndoStatus(DX.Colors["StatusTextPassive"], fmt.Sprintf(
		"%v: [%v/%v]",
		DX.T["UndoAction"],
		DX.UndoBufferPos+1,
		undoBufferLen,
	))
}

// moves 1 step forward in the DX.UndoBuffer
func redoDraft() {
	undoBufferLen := len(DX.UndoBuffer)
	undoBufferLastPos := undoBufferLen - 1
	newUndoBufferPos := DX.UndoBufferPos + 1

	if newUndoBufferPos > undoBufferLastPos {
		// nothing to redo - at end of DX.UndoBuffer
		setUndoStatus(DX.Colors["StatusTextPassive"], fmt.Sprintf(
			"%v [%v/%v]",
			DX.T["UndoNothingToRedo"],
			DX.UndoBufferPos+1,
			undoBufferLen,
		))

		return
	}

	DX.UndoBufferPos = newUndoBufferPos

	restoreFromUndoBuffer()

	setUndoStatus(DX.Colors["StatusTextPassive"], fmt.Sprintf(
		"%v: [%v/%v]",
		DX.T["RedoAction"],
		DX.UndoBufferPos+1,
		undoBufferLen,
	))
}

// Uses flate to compress bytes.
func compress(input []byte) ([]byte, error) {
	var b bytes.Buffer

	w, err := flate.NewWriter(&b, flate.BestCompression)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to create snapshot writer: %w", err)
	}

	_, err = w.Write(input)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to compress snapshot: %w", err)
	}

	w.Close()

	return b.Bytes(), nil
}

// Uses flate to decompress bytes.
func decompress(input []byte) ([]byte, error) {
	var b bytes.Buffer

	b.Write(input)

	r := flate.NewReader(&b)
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	return data, nil
}

// attempts to place the current draft state at
// DX.UndoBuffer[DX.UndoBufferPos+1], but only if there were actual changes.
func modifiedDraft() {
	b, err := snapshotBytes()
	if err != nil {
		setUndoStatus(DX.Colors["StatusTextError"], DX.T["UndoSnapshotError"])
		return
	}

	if len(DX.UndoBuffer) >= 1 {
		// compare against the latest snapshot to detect actual differences
		if bytes.Equal(b, DX.UndoBuffer[DX.UndoBufferPos]) {
			return
		}
	}

	// if the DX.UndoBufferPos is not at the end of the DX.UndoBuffer, then
	// all values after DX.UndoBufferPos need to be deleted
	if len(DX.UndoBuffer) >= 1 && DX.UndoBufferPos != len(DX.UndoBuffer)-1 {
		DX.UndoBuffer = slices.Delete(DX.UndoBuffer, DX.UndoBufferPos+1, len(DX.UndoBuffer))
	}

	DX.UndoBuffer = append(DX.UndoBuffer, b)

	// cap the buffer's length by discarding the oldest snapshots
	if len(DX.UndoBuffer) > c.UndoBufferMaxLength {
		DX.UndoBuffer = slices.Delete(DX.UndoBuffer, 0, len(DX.UndoBuffer)-c.UndoBufferMaxLength)
	}

	DX.UndoBufferPos = len(DX.UndoBuffer) - 1
}

package ui_test

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/tartampluch/go-sitter/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	// Initialize the custom widget using Fyne's test infrastructure.
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear previous content
			entry.SetText("")

			// Simulate typing
			test.Type(entry, string(tt.input))

			got := entry.Text
			if tt.accepted {
				if got != string(tt.input) {
					t.Errorf("expected input %q to be accepted, got text %q", tt.input, got)
				}
			} else {
				if got != "" {
					t.Errorf("expected input %q to be rejected, got text %q", tt.input, got)
				}
			}
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry()

	// Verify it requests the Number keyboard on mobile devices
	if got := entry.Keyboard(); got != mobile.NumberKeyboard {
		t.Errorf("expected keyboard type %v, got %v", mobile.NumberKeyboard, got)
	}
}

type stubClipboard struct{ content string }

func (c *stubClipboard) Content() string     { return c.content }
func (c *stubClipboard) SetContent(s string) { c.content = s }

// TestNumericalEntry_PasteKeepsDigits checks that pasted text is filtered like typed text.
func TestNumericalEntry_PasteKeepsDigits(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	entry.TypedShortcut(&fyne.ShortcutPaste{Clipboard: &stubClipboard{content: "port: 18 0-81"}})

	if entry.Text != "18081" {
		t.Errorf("expected only digits to be pasted, got %q", entry.Text)
	}
}

func TestNumericalEntry_MaxDigits(t *testing.T) {
	entry := ui.NewNumericalEntry()
	entry.MaxDigits = 5
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "1234567")

	if entry.Text != "12345" {
		t.Errorf("expected input to stop at 5 digits, got %q", entry.Text)
	}
}

// TestNumericalEntry_DirectSetText documents that SetText bypasses the filter;
// the Validator catches what programmatic updates let through.
func TestNumericalEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()

	// Direct setting bypasses TypedRune
	entry.SetText("abc")
	if entry.Text != "abc" {
		t.Error("SetText should allow arbitrary text (validation happens separately)")
	}
}

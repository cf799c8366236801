package hardware

import (
	"context"
	"fmt"
	"io"
	"sync"

	"mine_evacuation/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// TerminalDisplay renders LCD updates as bordered, colour-tinted boxes on a writer.
type TerminalDisplay struct {
	mu        sync.Mutex
	w         io.Writer
	text      string
	backlight models.RGB
}

func NewTerminalDisplay(w io.Writer) *TerminalDisplay {
	return &TerminalDisplay{w: w, backlight: models.ColorWhite}
}

func hexColor(c models.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func (d *TerminalDisplay) render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(hexColor(d.backlight)).
		Padding(0, 1)
	if d.backlight != models.ColorOff {
		style = style.Foreground(hexColor(d.backlight))
	}
	return style.Render(d.text)
}

func (d *TerminalDisplay) SetText(_ context.Context, text string, color models.RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
	d.backlight = color
	_, err := fmt.Fprintln(d.w, d.render())
	return err
}

func (d *TerminalDisplay) SetBacklight(_ context.Context, color models.RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backlight = color
	_, err := fmt.Fprintln(d.w, d.render())
	return err
}

// Text returns the last text written.
func (d *TerminalDisplay) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

var _ Display = (*TerminalDisplay)(nil)

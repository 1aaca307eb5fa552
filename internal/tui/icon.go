package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// iconRender is a window icon drawn for the terminal. It is computed once
// per window and held in the icon cache.
type iconRender struct {
	// swatch is a single cell in the icon's average colour.
	swatch string
	// preview draws the icon with half blocks, two pixel rows per line.
	preview string
}

const alphaCutoff = 128

var (
	noIconSwatch = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("·")
	noIconStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func renderIcon(img *image.RGBA) iconRender {
	if img == nil || img.Bounds().Empty() {
		return iconRender{swatch: noIconSwatch, preview: placeholderPreview(16)}
	}
	return iconRender{swatch: swatch(img), preview: halfBlocks(img)}
}

func swatch(img *image.RGBA) string {
	var r, g, b, n int
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A < alphaCutoff {
				continue
			}
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			n++
		}
	}
	if n == 0 {
		return noIconSwatch
	}
	avg := color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 0xff}
	return lipgloss.NewStyle().Foreground(hexColor(avg)).Render("█")
}

func halfBlocks(img *image.RGBA) string {
	bounds := img.Bounds()
	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			sb.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := color.RGBA{}
			if y+1 < bounds.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			sb.WriteString(cell(top, bottom))
		}
	}
	return sb.String()
}

func cell(top, bottom color.RGBA) string {
	topOn := top.A >= alphaCutoff
	bottomOn := bottom.A >= alphaCutoff
	switch {
	case topOn && bottomOn:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bottom)).Render("▀")
	case topOn:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Render("▀")
	case bottomOn:
		return lipgloss.NewStyle().Foreground(hexColor(bottom)).Render("▄")
	default:
		return " "
	}
}

func placeholderPreview(size int) string {
	rows := size / 2
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat("░", size)
	}
	return noIconStyle.Render(strings.Join(lines, "\n"))
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

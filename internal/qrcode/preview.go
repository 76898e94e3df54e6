package qrcode

import "strings"

// HalfBlocks draws the matrix with one character per module horizontally and
// two modules per character vertically, so the symbol stays roughly square in
// a terminal. Dark modules are drawn as block glyphs.
func (m Matrix) HalfBlocks() []string {
	n := m.Size()
	lines := make([]string, 0, (n+1)/2)

	for y := 0; y < n; y += 2 {
		var sb strings.Builder
		for x := 0; x < n; x++ {
			top := m[y][x]
			bottom := y+1 < n && m[y+1][x]
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		lines = append(lines, sb.String())
	}

	return lines
}

// Blocks draws two characters per module, one row per module line.
func (m Matrix) Blocks() string {
	var sb strings.Builder

	for _, row := range m {
		for _, dark := range row {
			if dark {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

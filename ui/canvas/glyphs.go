package canvas

import (
	"image"
	"image/color"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns covers the characters appearing in lot numbers.
var letterPatterns = map[rune][5]uint8{
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

func glyphPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// drawLabel renders a text label centered at (cx, cy) using the bitmap
// glyph font at the given pixel scale.
func drawLabel(output *image.RGBA, label string, cx, cy int, col color.RGBA, scale int) {
	if label == "" || scale < 1 {
		return
	}

	bounds := output.Bounds()
	glyphW := 4 * scale // 3 columns plus 1 spacing
	totalW := glyphW * len(label)
	x0 := cx - totalW/2
	y0 := cy - (5*scale)/2

	for i, ch := range label {
		pattern := glyphPattern(ch)
		gx := x0 + i*glyphW
		for row := 0; row < 5; row++ {
			for colBit := 0; colBit < 3; colBit++ {
				if pattern[row]&(1<<(2-colBit)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := gx + colBit*scale + dx
						py := y0 + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.SetRGBA(px, py, col)
						}
					}
				}
			}
		}
	}
}

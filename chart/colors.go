package chart

import (
	"fmt"
	"math/rand"
)

// RandomColor returns a random display color in hexadecimal form, e.g.
// "#1a2b3c".
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

// FillColor derives the translucent area fill paired with a border color by
// appending a 20% alpha channel.
func FillColor(border string) string {
	return border + "33"
}

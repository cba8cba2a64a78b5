package utility

import (
	"fmt"
	"math/rand"
)

// RandomColorHex returns a #rrggbb color with each component kept away from
// pure black and pure white so names stay readable on both backgrounds.
func RandomColorHex() string {
	r := rand.Intn(248) + 4
	g := rand.Intn(248) + 4
	b := rand.Intn(248) + 4
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

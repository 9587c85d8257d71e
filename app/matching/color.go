package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorDistanceThreshold is the exclusive upper bound on the RGB distance
// (0..255 per channel) for a color to count as a match.
const ColorDistanceThreshold = 50.0

// RGB is a color with 0..255 channels.
type RGB struct {
	R, G, B uint8
}

// ColorCandidate is a stored color that a hex string can be matched against.
type ColorCandidate struct {
	ID  uint
	Hex string
}

type ColorMatch struct {
	ID       uint
	Hex      string
	Distance float64
}

// ParseHex parses "#rgb", "#rrggbb", "rgb" or "rrggbb" in any case.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}
	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// NormalizeHex returns hex as lowercase "#rrggbb".
func NormalizeHex(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Distance is the Euclidean distance between two colors in RGB space.
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// NearestColor returns the candidate closest to hex when its distance is
// below ColorDistanceThreshold. Candidates with unparsable hex values are
// skipped. On equal distances the earlier candidate wins.
func NearestColor(hex string, candidates []ColorCandidate) (ColorMatch, bool, error) {
	target, err := ParseHex(hex)
	if err != nil {
		return ColorMatch{}, false, err
	}

	best := ColorMatch{Distance: math.Inf(1)}
	found := false
	for _, c := range candidates {
		rgb, err := ParseHex(c.Hex)
		if err != nil {
			continue
		}
		d := Distance(target, rgb)
		if d < best.Distance {
			best = ColorMatch{ID: c.ID, Hex: c.Hex, Distance: d}
			found = true
		}
	}

	if !found || best.Distance >= ColorDistanceThreshold {
		return ColorMatch{}, false, nil
	}
	return best, true, nil
}

package viz

import "math"

const (
	coreCols    = 24
	coreRows    = 12
	channelStep = 8
	glowDensity = 0.35
)

// DrawCore paints a cutaway of the core: vessel wall, fuel channels, control
// rods inserted to rodsPos percent, and a flicker of neutron glow whose
// density follows the flux.
func DrawCore(c *Canvas, rodsPos, flux float64, frame int) {
	c.Clear()

	w, h := c.PixelWidth()-1, c.PixelHeight()-1
	c.DrawRect(0, 0, w, h)

	top, bottom := 4, h-4
	for x := channelStep; x < w; x += channelStep {
		for y := top; y <= bottom; y += 2 {
			c.Set(x, y)
		}
	}

	depth := int(math.Round(rodsPos / 100 * float64(bottom-1)))
	for x := channelStep + channelStep/2; x < w; x += channelStep {
		if depth > 0 {
			c.DrawLine(x, 1, x, depth)
		}
	}

	density := math.Min(1, math.Max(0, flux)) * glowDensity
	for y := top; y <= bottom; y++ {
		for x := 2; x < w-1; x++ {
			if c.Lit(x, y) {
				continue
			}
			if glow(x, y, frame) < density {
				c.Set(x, y)
			}
		}
	}
}

// glow is a cheap deterministic hash in [0, 1).
func glow(x, y, frame int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(frame)*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / float64(math.MaxUint32+1)
}

package grid

// tierBands holds the inclusive upper Chebyshev bound of each tier; zones
// past the last bound fall into the final tier. Tier is always recomputed
// from the coordinate and never persisted.
var tierBands = [...]int{2, 5, 9, 14}

// MaxTier is the highest tier value Tier can return.
const MaxTier = len(tierBands)

// Tier maps a zone coordinate to its difficulty band.
func Tier(c Coord) int {
	dist := c.Chebyshev()
	for tier, bound := range tierBands {
		if dist <= bound {
			return tier
		}
	}
	return MaxTier
}

package blob

import (
	"fmt"
	"math"

	"github.com/npillmayer/morphspace"
)

func ptstring(p morphspace.Pair, iscontrol bool) string {
	if math.IsNaN(p.X()) || math.IsNaN(p.Y()) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X()), round(p.Y()))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X()), round(p.Y()))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}

package entity

import (
	"errors"
	"fmt"
	"math"
)

var ErrStatsUndefined = errors.New("stats are undefined when only mines remain")

// Stats is what the stats panel shows for the current progress of a round.
type Stats struct {
	// Probability that the next reveal is safe, in [0, 1].
	Probability float64 `json:"probability"`
	// Multiplier paid when cashing out now.
	Multiplier float64 `json:"multiplier"`
	// NextMultiplier is the multiplier after one more safe reveal, or 0 when
	// no further safe reveal is possible.
	NextMultiplier float64 `json:"next_multiplier"`
}

// ComputeStats returns the fair-odds stats after revealedCount reveals.
//
// With R = N² − revealedCount hidden cells and S = R − M safe ones among them:
// probability = S/R, multiplier = 1/probability and
// nextMultiplier = 1/((S−1)/(R−1)).
func (that GameConfig) ComputeStats(revealedCount int) (Stats, error) {
	remaining := that.Cells() - revealedCount
	safeSpots := remaining - that.MineCount

	if revealedCount < 0 || safeSpots <= 0 {
		return Stats{}, fmt.Errorf("%w: revealed %d of %d cells", ErrStatsUndefined, revealedCount, that.Cells())
	}

	probability := float64(safeSpots) / float64(remaining)

	stats := Stats{
		Probability: probability,
		Multiplier:  1 / probability,
	}

	if safeSpots > 1 {
		stats.NextMultiplier = 1 / (float64(safeSpots-1) / float64(remaining-1))
	}

	return stats, nil
}

// CalculatePayout returns bet × multiplier rounded to cents. Winning rounds
// pass the multiplier already rounded to what the panel displays.
func CalculatePayout(bet, multiplier float64) float64 {
	return roundTo(bet*multiplier, 2)
}

// FormatMultiplier renders a multiplier the way the stats panel shows it, e.g. "1.13x".
// Halves round away from zero, so 1.125 becomes "1.13x".
func FormatMultiplier(multiplier float64) string {
	return fmt.Sprintf("%.2fx", roundTo(multiplier, 2))
}

// FormatProbability renders a probability in [0, 1] as a percentage, e.g. "88.9%".
func FormatProbability(probability float64) string {
	return fmt.Sprintf("%.1f%%", roundTo(probability*100, 1))
}

func FormatPayout(payout float64) string {
	return fmt.Sprintf("%.2f", roundTo(payout, 2))
}

func roundTo(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}

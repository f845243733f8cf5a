// Package statistics accumulates per-player session results.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the outcome of a single settled hand
type HandResult struct {
	Outcome   game.Outcome
	Bet       float64 // Final stake, after doubling or surrender
	Payout    float64 // Amount returned, excluding insurance
	Status    game.HandStatus
	Insurance float64 // Insurance payout, only against a dealer blackjack
}

// Statistics tracks one player's results across a session
type Statistics struct {
	Rounds int
	SumNet float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Net result of every round, for median/percentile

	Hands      int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int // Wins paid at the blackjack rate
	Busts      int
	Surrenders int

	Wagered         float64
	Returned        float64
	InsurancePayout float64

	BiggestWin  float64
	BiggestLoss float64 // Stored as a positive amount
}

// Mean returns the average net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of round results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// AddRound incorporates a player's net result for one round
func (s *Statistics) AddRound(net float64) {
	s.Rounds++
	s.SumNet += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if net > s.BiggestWin {
		s.BiggestWin = net
	}
	if -net > s.BiggestLoss {
		s.BiggestLoss = -net
	}
}

// AddHand incorporates one settled hand
func (s *Statistics) AddHand(result HandResult) {
	s.Hands++
	s.Wagered += result.Bet
	s.Returned += result.Payout
	s.InsurancePayout += result.Insurance

	switch result.Outcome {
	case game.BlackjackWin:
		s.Wins++
		s.Blackjacks++
	case game.Win:
		s.Wins++
	case game.Push:
		s.Pushes++
	default:
		s.Losses++
	}

	switch result.Status {
	case game.Bust:
		s.Busts++
	case game.Surrendered:
		s.Surrenders++
	}
}

// WinRate returns the fraction of hands won
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Median returns the median round result
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the round result at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the tallies agree with each other
func (s *Statistics) Validate() error {
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if total := s.Wins + s.Losses + s.Pushes; total != s.Hands {
		return fmt.Errorf("outcomes total (%d) does not match hands count (%d)", total, s.Hands)
	}

	if s.Blackjacks > s.Wins {
		return fmt.Errorf("blackjacks (%d) exceed wins (%d)", s.Blackjacks, s.Wins)
	}

	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.SumNet) > 1e-6 {
		return fmt.Errorf("ledger mismatch: sum of rounds %.2f, net %.2f", sum, s.SumNet)
	}
	return nil
}

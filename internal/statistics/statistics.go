// Package statistics accumulates per-round results of a blackjack player.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Outcome counts for the hands played in a round
type Outcome struct {
	Wins     int
	Naturals int
	Pushes   int
	Losses   int
	Busts    int
}

// Hands returns the number of hands the outcome covers
func (o Outcome) Hands() int {
	return o.Wins + o.Naturals + o.Pushes + o.Losses + o.Busts
}

// RoundResult is one player's result for one round
type RoundResult struct {
	Net       int     // balance change
	Wagered   int     // total bet across hands, after doubles and splits
	TrueCount float64 // true count when the bet was placed
	Doubles   int
	Splits    int
	Outcome   Outcome
}

// Count buckets cover true counts from MinCountBucket to MaxCountBucket;
// counts outside the range fall into the end buckets.
const (
	MinCountBucket  = -2
	MaxCountBucket  = 4
	NumCountBuckets = MaxCountBucket - MinCountBucket + 1
)

// BucketStats tracks results for rounds bet at one true count
type BucketStats struct {
	Rounds  int
	SumNet  float64
	Wagered int
}

// Statistics tracks a player's results over many rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wagered  int
	NetTotal int // integer ledger, checked against SumNet
	Doubles  int
	Splits   int
	Outcomes Outcome

	CountResults [NumCountBuckets]BucketStats
}

// CountBucket returns the bucket index for a true count
func CountBucket(trueCount float64) int {
	b := int(math.Floor(trueCount))
	b = max(b, MinCountBucket)
	b = min(b, MaxCountBucket)
	return b - MinCountBucket
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.Wagered += result.Wagered
	s.NetTotal += result.Net
	s.Doubles += result.Doubles
	s.Splits += result.Splits
	s.Outcomes.Wins += result.Outcome.Wins
	s.Outcomes.Naturals += result.Outcome.Naturals
	s.Outcomes.Pushes += result.Outcome.Pushes
	s.Outcomes.Losses += result.Outcome.Losses
	s.Outcomes.Busts += result.Outcome.Busts

	b := &s.CountResults[CountBucket(result.TrueCount)]
	b.Rounds++
	b.SumNet += net
	b.Wagered += result.Wagered
}

// Merge adds all of other's rounds to s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wagered += other.Wagered
	s.NetTotal += other.NetTotal
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.Outcomes.Wins += other.Outcomes.Wins
	s.Outcomes.Naturals += other.Outcomes.Naturals
	s.Outcomes.Pushes += other.Outcomes.Pushes
	s.Outcomes.Losses += other.Outcomes.Losses
	s.Outcomes.Busts += other.Outcomes.Busts
	for i := range s.CountResults {
		s.CountResults[i].Rounds += other.CountResults[i].Rounds
		s.CountResults[i].SumNet += other.CountResults[i].SumNet
		s.CountResults[i].Wagered += other.CountResults[i].Wagered
	}
}

// Mean returns the average net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
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

// Edge returns net result as a fraction of the total wagered. Positive
// means the player beat the house.
func (s *Statistics) Edge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.Wagered)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
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

// CountMean returns the mean result for rounds bet in a count bucket
func (s *Statistics) CountMean(bucket int) float64 {
	if bucket < 0 || bucket >= NumCountBuckets {
		return 0
	}
	b := s.CountResults[bucket]
	if b.Rounds == 0 {
		return 0
	}
	return b.SumNet / float64(b.Rounds)
}

// IsLedgerBalanced checks the float and integer running totals agree
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-float64(s.NetTotal)) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumNet=%.2f, NetTotal=%d", s.SumNet, s.NetTotal)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if s.Outcomes.Hands() < s.Rounds {
		return fmt.Errorf("hands played (%d) fewer than rounds (%d)", s.Outcomes.Hands(), s.Rounds)
	}

	totalBucketRounds := 0
	for _, b := range s.CountResults {
		totalBucketRounds += b.Rounds
	}
	if totalBucketRounds != s.Rounds {
		return fmt.Errorf("count bucket rounds total (%d) does not match total rounds (%d)",
			totalBucketRounds, s.Rounds)
	}

	return nil
}

package team

import (
	"math/rand"

	"scrimbot/internal/constants"
	"scrimbot/internal/domain"
)

// Result is a two-team partition with its point sums. Signature is empty for
// random splits, which never feed the composition history.
type Result struct {
	TeamA     []domain.Player
	TeamB     []domain.Player
	SumA      int
	SumB      int
	Diff      int
	Signature string
}

func playerKeys(players []domain.Player) []string {
	keys := make([]string, len(players))
	for i, p := range players {
		keys[i] = p.ID.Key()
	}
	return keys
}

func sumPoints(players []domain.Player) int {
	total := 0
	for _, p := range players {
		total += p.Points
	}
	return total
}

// SplitBalanced partitions players into two teams minimizing the point-sum
// difference, with soft penalties against repeating recent compositions.
// Every subset of size n/2 is scored; for small parties the exhaustive scan is
// cheap and always finds the global optimum of the scoring function. Above
// MaxBalancedParticipants the enumeration is refused.
//
// lastSignature is the composition to avoid hardest; recent holds up to
// HistoryDepth older signatures, most recent first, weighted with linear
// decay down to a floor.
func SplitBalanced(rng *rand.Rand, players []domain.Player, lastSignature string, recent []string) (Result, error) {
	n := len(players)
	if n < 2 {
		return Result{TeamA: players, SumA: sumPoints(players)}, nil
	}
	if n > constants.MaxBalancedParticipants {
		return Result{}, domain.ErrTooManyParticipants
	}

	total := sumPoints(players)
	sizeA := n / 2

	var best Result
	bestScore := -1

	combinations(n, sizeA, func(inA []bool) {
		candA := make([]domain.Player, 0, sizeA)
		candB := make([]domain.Player, 0, n-sizeA)
		for i, p := range players {
			if inA[i] {
				candA = append(candA, p)
			} else {
				candB = append(candB, p)
			}
		}

		sumA := sumPoints(candA)
		sumB := total - sumA
		diff := sumA - sumB
		if diff < 0 {
			diff = -diff
		}

		// Coin-flip which candidate gets the A label so repeated calls on
		// the same roster do not always put the same subset first.
		teamA, teamB := candA, candB
		if rng.Intn(2) == 1 {
			teamA, teamB = candB, candA
		}

		idsA := playerKeys(teamA)
		idsB := playerKeys(teamB)
		sig := Signature(idsA, idsB)

		penalty := 0
		if lastSignature != "" && sig == lastSignature {
			penalty += constants.ExactRepeatPenalty
		}
		penalty += int(Similarity(idsA, idsB, lastSignature) * constants.LastSignatureWeight)

		for i, old := range recent {
			if i >= constants.HistoryDepth {
				break
			}
			w := constants.HistoryBaseWeight - i*constants.HistoryWeightStep
			if w < constants.HistoryFloorWeight {
				w = constants.HistoryFloorWeight
			}
			penalty += int(Similarity(idsA, idsB, old) * float64(w))
		}

		score := diff*constants.DiffWeight + penalty
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = Result{
				TeamA:     teamA,
				TeamB:     teamB,
				SumA:      sumPoints(teamA),
				SumB:      sumPoints(teamB),
				Diff:      diff,
				Signature: sig,
			}
		}
	})

	return best, nil
}

// combinations calls fn with a membership mask for every size-k subset of
// {0..n-1}. The mask is reused between calls.
func combinations(n, k int, fn func(inA []bool)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	mask := make([]bool, n)

	for {
		for i := range mask {
			mask[i] = false
		}
		for _, i := range idx {
			mask[i] = true
		}
		fn(mask)

		// Advance to the next combination in lexicographic order.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// SplitRandom shuffles the roster and cuts it at the ceiling of half,
// ignoring points and history entirely.
func SplitRandom(rng *rand.Rand, players []domain.Player) Result {
	shuffled := append([]domain.Player(nil), players...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	half := (len(shuffled) + 1) / 2
	teamA, teamB := shuffled[:half], shuffled[half:]
	if rng.Intn(2) == 1 {
		teamA, teamB = teamB, teamA
	}

	sumA := sumPoints(teamA)
	sumB := sumPoints(teamB)
	diff := sumA - sumB
	if diff < 0 {
		diff = -diff
	}
	return Result{TeamA: teamA, TeamB: teamB, SumA: sumA, SumB: sumB, Diff: diff}
}

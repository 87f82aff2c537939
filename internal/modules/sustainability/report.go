package sustainability

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/akyriacou/cryptosage/internal/domain"
)

// conservativeCoreAssets are the established assets a conservative tier is
// limited to in sustainability recommendations.
var conservativeCoreAssets = map[string]bool{
	"bitcoin":  true,
	"ethereum": true,
	"cardano":  true,
}

// maxRecommendations caps the recommendation list size.
const maxRecommendations = 8

// Recommendations returns sustainability-focused asset recommendations
// filtered by risk tier and sorted by score, highest first.
//
// Conservative keeps only established assets scoring at least 70, Moderate
// keeps anything scoring at least 60, Aggressive keeps everything.
func (s *Scorer) Recommendations(tier domain.RiskTolerance) []Score {
	scored := s.allScores()

	var recommendations []Score
	switch tier {
	case domain.RiskConservative:
		for _, score := range scored {
			if score.TotalScore >= 70 && conservativeCoreAssets[score.AssetID] {
				recommendations = append(recommendations, score)
			}
		}
	case domain.RiskModerate:
		for _, score := range scored {
			if score.TotalScore >= 60 {
				recommendations = append(recommendations, score)
			}
		}
	default: // Aggressive
		recommendations = scored
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

// Methodology describes how the report scores were produced.
type Methodology struct {
	Criteria      []string `json:"criteria"`
	Weights       Weights  `json:"weights"`
	TotalAnalyzed int      `json:"total_cryptos_analyzed"`
}

// ConsensusGroup aggregates scores for one consensus mechanism.
type ConsensusGroup struct {
	AverageScore float64  `json:"average_score"`
	Count        int      `json:"count"`
	Assets       []string `json:"cryptos"`
}

// Report is a comprehensive sustainability report over all profiled assets.
type Report struct {
	Timestamp           time.Time                 `json:"timestamp"`
	Methodology         Methodology               `json:"methodology"`
	TopSustainable      []Score                   `json:"top_sustainable_cryptos"`
	ConsensusAnalysis   map[string]ConsensusGroup `json:"consensus_analysis"`
	EnergyEfficiencyTop []Score                   `json:"energy_efficiency_rankings"`
}

// Report generates the full sustainability report: top 5 by composite score,
// per-consensus averages, and the top 10 energy efficiency ranking.
func (s *Scorer) Report() Report {
	scored := s.allScores()

	groups := make(map[string][]Score)
	for _, score := range scored {
		groups[score.ConsensusMechanism] = append(groups[score.ConsensusMechanism], score)
	}

	analysis := make(map[string]ConsensusGroup, len(groups))
	for consensus, members := range groups {
		totals := make([]float64, len(members))
		names := make([]string, len(members))
		for i, member := range members {
			totals[i] = member.TotalScore
			names[i] = member.Name
		}
		analysis[consensus] = ConsensusGroup{
			AverageScore: round1(stat.Mean(totals, nil)),
			Count:        len(members),
			Assets:       names,
		}
	}

	top := scored
	if len(top) > 5 {
		top = top[:5]
	}

	byEnergy := make([]Score, len(scored))
	copy(byEnergy, scored)
	sort.SliceStable(byEnergy, func(i, j int) bool {
		return byEnergy[i].EnergyEfficiency > byEnergy[j].EnergyEfficiency
	})
	if len(byEnergy) > 10 {
		byEnergy = byEnergy[:10]
	}

	return Report{
		Timestamp: time.Now().UTC(),
		Methodology: Methodology{
			Criteria:      []string{"energy_efficiency", "governance", "innovation", "transparency"},
			Weights:       s.weights,
			TotalAnalyzed: len(profiles),
		},
		TopSustainable:      top,
		ConsensusAnalysis:   analysis,
		EnergyEfficiencyTop: byEnergy,
	}
}

// allScores scores every profiled asset and sorts by total score descending.
func (s *Scorer) allScores() []Score {
	ids := KnownAssetIDs()
	sort.Strings(ids) // stable output regardless of map iteration order

	scored := make([]Score, len(ids))
	for i, id := range ids {
		scored[i] = s.Score(id)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	return scored
}

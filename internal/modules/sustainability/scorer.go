package sustainability

import (
	"math"
	"sort"
	"strings"
)

// Weights holds the criteria weights for the composite score.
// The four weights sum to 1.0.
type Weights struct {
	Energy       float64
	Governance   float64
	Innovation   float64
	Transparency float64
}

// DefaultWeights are the standard criteria weights.
var DefaultWeights = Weights{
	Energy:       0.40,
	Governance:   0.30,
	Innovation:   0.20,
	Transparency: 0.10,
}

// Score is the derived sustainability assessment for one asset.
// All score fields are rounded to 1 decimal and clamped to [0,100].
type Score struct {
	AssetID            string  `json:"crypto_id"`
	Name               string  `json:"name"`
	TotalScore         float64 `json:"total_score"`
	EnergyEfficiency   float64 `json:"energy_efficiency"`
	Governance         float64 `json:"governance"`
	Innovation         float64 `json:"innovation"`
	Transparency       float64 `json:"transparency"`
	KeyFeatures        string  `json:"key_features"`
	CarbonNeutralGoal  bool    `json:"carbon_neutral_goal"`
	ConsensusMechanism string  `json:"consensus_mechanism"`
}

// Ordinal score tables.
var (
	energyScores = map[Intensity]float64{
		IntensityVeryLow:  95,
		IntensityLow:      80,
		IntensityMedium:   60,
		IntensityHigh:     30,
		IntensityVeryHigh: 10,
	}

	governanceScores = map[Governance]float64{
		GovernanceDemocratic:    90,
		GovernanceDecentralized: 80,
		GovernanceDeveloperLed:  70,
		GovernanceFoundationLed: 60,
		GovernanceCommunity:     75,
	}

	initiativeScores = map[InitiativeStrength]float64{
		InitiativeVeryStrong: 95,
		InitiativeStrong:     80,
		InitiativeMedium:     60,
		InitiativeLimited:    30,
		InitiativeNone:       10,
	}

	gradeScores = map[Grade]float64{
		GradeVeryHigh: 95,
		GradeHigh:     80,
		GradeMedium:   60,
		GradeLow:      30,
		GradeVeryLow:  10,
	}

	innovationScores = map[string]float64{
		"sustainability":   90,
		"smart_contracts":  85,
		"interoperability": 80,
		"scaling":          80,
		"performance":      75,
		"oracles":          75,
		"store_of_value":   70,
		"payments":         65,
		"privacy":          75,
		"meme":             30,
		"general":          60,
	}
)

// Scorer computes sustainability scores from the static profiles.
// It holds only immutable configuration and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a sustainability scorer with the given criteria weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score calculates the sustainability score for an asset id. Unknown ids use
// the default profile; scoring never fails.
func (s *Scorer) Score(assetID string) Score {
	profile := lookupProfile(assetID)

	energy := energyEfficiencyScore(profile)
	governance := governanceScore(profile)
	innovation := innovationScore(profile)
	transparency := transparencyScore(profile)

	total := energy*s.weights.Energy +
		governance*s.weights.Governance +
		innovation*s.weights.Innovation +
		transparency*s.weights.Transparency

	return Score{
		AssetID:            assetID,
		Name:               DisplayName(assetID),
		TotalScore:         round1(total),
		EnergyEfficiency:   round1(energy),
		Governance:         round1(governance),
		Innovation:         round1(innovation),
		Transparency:       round1(transparency),
		KeyFeatures:        keyFeatures(profile),
		CarbonNeutralGoal:  profile.CarbonNeutralGoal,
		ConsensusMechanism: profile.Consensus.Display(),
	}
}

// Compare scores multiple assets and returns the results sorted by total
// score, highest first.
func (s *Scorer) Compare(assetIDs []string) []Score {
	scores := make([]Score, len(assetIDs))
	for i, id := range assetIDs {
		scores[i] = s.Score(id)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	return scores
}

// energyEfficiencyScore combines the energy intensity base score with
// renewable usage, carbon goal, and consensus mechanism adjustments.
func energyEfficiencyScore(p Profile) float64 {
	base := energyScores[p.EnergyIntensity]

	// 20% weight for renewable energy usage
	renewableBonus := gradeScores[p.RenewableUsage] * 0.2

	var carbonBonus float64
	if p.CarbonNeutralGoal {
		carbonBonus = 10
	}

	var consensusBonus float64
	switch {
	case p.Consensus.stakeBased():
		consensusBonus = 15
	case p.Consensus == ConsensusProofOfHistory:
		consensusBonus = 10
	case p.Consensus == ConsensusProofOfWork:
		consensusBonus = -20
	}

	return clamp(base + renewableBonus + carbonBonus + consensusBonus)
}

// governanceScore combines the governance model base score with transparency
// and initiative adjustments centered on the medium level.
func governanceScore(p Profile) float64 {
	base := governanceScores[p.GovernanceModel]

	transparencyBonus := (gradeScores[p.Transparency] - 60) * 0.3
	initiativeBonus := (initiativeScores[p.Initiatives] - 60) * 0.2

	return clamp(base + transparencyBonus + initiativeBonus)
}

// innovationScore maps the innovation focus to a base score with bonuses for
// environmental focus areas and carbon goals.
func innovationScore(p Profile) float64 {
	base, ok := innovationScores[p.InnovationFocus]
	if !ok {
		base = 60
	}

	var environmentalBonus float64
	if p.InnovationFocus == "sustainability" || p.InnovationFocus == "scaling" {
		environmentalBonus = 10
	}

	var carbonBonus float64
	if p.CarbonNeutralGoal {
		carbonBonus = 5
	}

	return clamp(base + environmentalBonus + carbonBonus)
}

// transparencyScore combines the transparency base score with initiative and
// governance bonuses.
func transparencyScore(p Profile) float64 {
	base := gradeScores[p.Transparency]

	var initiativeBonus float64
	if p.Initiatives == InitiativeStrong || p.Initiatives == InitiativeVeryStrong {
		initiativeBonus = 10
	}

	var governanceBonus float64
	if p.GovernanceModel == GovernanceDemocratic {
		governanceBonus = 5
	}

	return clamp(base + initiativeBonus + governanceBonus)
}

// keyFeatures derives descriptive tags from the profile fields, joined in a
// fixed evaluation order.
func keyFeatures(p Profile) string {
	var features []string

	if p.Consensus != ConsensusUnknown {
		features = append(features, p.Consensus.Display()+" consensus")
	}

	if p.EnergyIntensity == IntensityVeryLow || p.EnergyIntensity == IntensityLow {
		features = append(features, "Energy efficient")
	}

	if p.CarbonNeutralGoal {
		features = append(features, "Carbon neutral goal")
	}

	if p.RenewableUsage == GradeHigh || p.RenewableUsage == GradeVeryHigh {
		features = append(features, "High renewable energy usage")
	}

	if p.Initiatives == InitiativeStrong || p.Initiatives == InitiativeVeryStrong {
		features = append(features, "Strong environmental initiatives")
	}

	if p.GovernanceModel == GovernanceDemocratic {
		features = append(features, "Democratic governance")
	}

	if len(features) == 0 {
		return "Standard cryptocurrency features"
	}
	return strings.Join(features, ", ")
}

// clamp restricts a score to [0,100].
func clamp(score float64) float64 {
	return math.Min(100, math.Max(0, score))
}

// round1 rounds to 1 decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

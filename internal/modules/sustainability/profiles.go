// Package sustainability provides the weighted multi-criteria sustainability
// scorer. Profiles are static, immutable, and defined once at startup; scores
// are derived on every request.
package sustainability

import "strings"

// Consensus represents a blockchain consensus mechanism
type Consensus string

const (
	ConsensusProofOfWork           Consensus = "proof_of_work"
	ConsensusProofOfStake          Consensus = "proof_of_stake"
	ConsensusNominatedProofOfStake Consensus = "nominated_proof_of_stake"
	ConsensusPureProofOfStake      Consensus = "pure_proof_of_stake"
	ConsensusProofOfHistory        Consensus = "proof_of_history"
	ConsensusUnknown               Consensus = "unknown"
)

// Display returns the consensus name with underscores replaced and words
// title-cased, e.g. "Proof Of Stake".
func (c Consensus) Display() string {
	return titleCase(strings.ReplaceAll(string(c), "_", " "))
}

// stakeBased reports whether the consensus is any proof-of-stake variant.
func (c Consensus) stakeBased() bool {
	switch c {
	case ConsensusProofOfStake, ConsensusNominatedProofOfStake, ConsensusPureProofOfStake:
		return true
	}
	return false
}

// Intensity is a 5-level ordinal for energy intensity.
type Intensity string

const (
	IntensityVeryLow  Intensity = "very_low"
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

// Grade is a 5-level ordinal used for transparency and renewable energy usage.
type Grade string

const (
	GradeVeryHigh Grade = "very_high"
	GradeHigh     Grade = "high"
	GradeMedium   Grade = "medium"
	GradeLow      Grade = "low"
	GradeVeryLow  Grade = "very_low"
)

// InitiativeStrength is a 5-level ordinal for environmental initiatives.
type InitiativeStrength string

const (
	InitiativeVeryStrong InitiativeStrength = "very_strong"
	InitiativeStrong     InitiativeStrength = "strong"
	InitiativeMedium     InitiativeStrength = "medium"
	InitiativeLimited    InitiativeStrength = "limited"
	InitiativeNone       InitiativeStrength = "none"
)

// Governance represents a project governance model
type Governance string

const (
	GovernanceDemocratic    Governance = "democratic"
	GovernanceDecentralized Governance = "decentralized"
	GovernanceDeveloperLed  Governance = "developer_led"
	GovernanceFoundationLed Governance = "foundation_led"
	GovernanceCommunity     Governance = "community"
)

// Profile is the static sustainability record for one asset.
type Profile struct {
	Consensus         Consensus
	EnergyIntensity   Intensity
	GovernanceModel   Governance
	Initiatives       InitiativeStrength
	InnovationFocus   string
	Transparency      Grade
	CarbonNeutralGoal bool
	RenewableUsage    Grade
}

// defaultProfile is used for any asset id without a known profile.
var defaultProfile = Profile{
	Consensus:         ConsensusUnknown,
	EnergyIntensity:   IntensityMedium,
	GovernanceModel:   GovernanceDecentralized,
	Initiatives:       InitiativeLimited,
	InnovationFocus:   "general",
	Transparency:      GradeMedium,
	CarbonNeutralGoal: false,
	RenewableUsage:    GradeMedium,
}

// profiles holds the sustainability profile per canonical asset id.
// Keys are lowercase canonical ids; lookups are case-insensitive.
var profiles = map[string]Profile{
	"bitcoin": {
		Consensus:         ConsensusProofOfWork,
		EnergyIntensity:   IntensityVeryHigh,
		GovernanceModel:   GovernanceDecentralized,
		Initiatives:       InitiativeLimited,
		InnovationFocus:   "store_of_value",
		Transparency:      GradeHigh,
		CarbonNeutralGoal: false,
		RenewableUsage:    GradeMedium,
	},
	"ethereum": {
		Consensus:         ConsensusProofOfStake,
		EnergyIntensity:   IntensityLow,
		GovernanceModel:   GovernanceDeveloperLed,
		Initiatives:       InitiativeStrong,
		InnovationFocus:   "smart_contracts",
		Transparency:      GradeHigh,
		CarbonNeutralGoal: true,
		RenewableUsage:    GradeHigh,
	},
	"cardano": {
		Consensus:         ConsensusProofOfStake,
		EnergyIntensity:   IntensityVeryLow,
		GovernanceModel:   GovernanceDemocratic,
		Initiatives:       InitiativeStrong,
		InnovationFocus:   "sustainability",
		Transparency:      GradeVeryHigh,
		CarbonNeutralGoal: true,
		RenewableUsage:    GradeVeryHigh,
	},
	"polkadot": {
		Consensus:         ConsensusNominatedProofOfStake,
		EnergyIntensity:   IntensityVeryLow,
		GovernanceModel:   GovernanceDemocratic,
		Initiatives:       InitiativeStrong,
		InnovationFocus:   "interoperability",
		Transparency:      GradeHigh,
		CarbonNeutralGoal: true,
		RenewableUsage:    GradeHigh,
	},
	"solana": {
		Consensus:         ConsensusProofOfHistory,
		EnergyIntensity:   IntensityLow,
		GovernanceModel:   GovernanceFoundationLed,
		Initiatives:       InitiativeMedium,
		InnovationFocus:   "performance",
		Transparency:      GradeMedium,
		CarbonNeutralGoal: true,
		RenewableUsage:    GradeMedium,
	},
	"chainlink": {
		Consensus:         ConsensusProofOfStake,
		EnergyIntensity:   IntensityLow,
		GovernanceModel:   GovernanceDecentralized,
		Initiatives:       InitiativeMedium,
		InnovationFocus:   "oracles",
		Transparency:      GradeMedium,
		CarbonNeutralGoal: false,
		RenewableUsage:    GradeMedium,
	},
	"litecoin": {
		Consensus:         ConsensusProofOfWork,
		EnergyIntensity:   IntensityHigh,
		GovernanceModel:   GovernanceDecentralized,
		Initiatives:       InitiativeLimited,
		InnovationFocus:   "payments",
		Transparency:      GradeMedium,
		CarbonNeutralGoal: false,
		RenewableUsage:    GradeMedium,
	},
	"dogecoin": {
		Consensus:         ConsensusProofOfWork,
		EnergyIntensity:   IntensityHigh,
		GovernanceModel:   GovernanceCommunity,
		Initiatives:       InitiativeLimited,
		InnovationFocus:   "meme",
		Transparency:      GradeMedium,
		CarbonNeutralGoal: false,
		RenewableUsage:    GradeLow,
	},
	"algorand": {
		Consensus:         ConsensusPureProofOfStake,
		EnergyIntensity:   IntensityVeryLow,
		GovernanceModel:   GovernanceDemocratic,
		Initiatives:       InitiativeVeryStrong,
		InnovationFocus:   "sustainability",
		Transparency:      GradeVeryHigh,
		CarbonNeutralGoal: true,
		RenewableUsage:    GradeVeryHigh,
	},
	"matic-network": {
		Consensus:         ConsensusProofOfStake,
		EnergyIntensity:   IntensityLow,
		GovernanceModel:   GovernanceDemocratic,
		Initiatives:       InitiativeStrong,
		InnovationFocus:   "scaling",
		Transparency:      GradeHigh,
		CarbonNeutralGoal: true,
		RenewableUsage:    GradeHigh,
	},
}

// displayNames maps canonical ids to display names.
var displayNames = map[string]string{
	"bitcoin":       "Bitcoin",
	"ethereum":      "Ethereum",
	"cardano":       "Cardano",
	"polkadot":      "Polkadot",
	"solana":        "Solana",
	"chainlink":     "Chainlink",
	"litecoin":      "Litecoin",
	"dogecoin":      "Dogecoin",
	"algorand":      "Algorand",
	"matic-network": "Polygon",
}

// KnownAssetIDs returns the canonical ids of all profiled assets.
func KnownAssetIDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	return ids
}

// DisplayName returns the human-readable name for an asset id, falling back
// to a title-cased version of the id itself.
func DisplayName(assetID string) string {
	if name, ok := displayNames[strings.ToLower(assetID)]; ok {
		return name
	}
	return titleCase(assetID)
}

// lookupProfile resolves an asset id to its profile, case-insensitively.
// Unknown ids resolve to the default profile; lookup never fails.
func lookupProfile(assetID string) Profile {
	if profile, ok := profiles[strings.ToLower(assetID)]; ok {
		return profile
	}
	return defaultProfile
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

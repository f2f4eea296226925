package model

// Targeting strategy names
const (
	BotStrategyRandom   = "random"
	BotStrategyHeatmap  = "heatmap"
	BotStrategyDiagonal = "diagonal"
	BotStrategyAdaptive = "adaptive"
)

// Placement policy names
const (
	PlacementPolicyUnbiased = "unbiased"
	PlacementPolicyBorder   = "border"
	PlacementPolicyDiagonal = "no-diagonal"
	PlacementPolicyHalf     = "half"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random with finishing"
	case BotStrategyHeatmap:
		return "Probability heatmap"
	case BotStrategyDiagonal:
		return "Diagonal then probability"
	case BotStrategyAdaptive:
		return "Adaptive"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid targeting strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom, BotStrategyHeatmap, BotStrategyDiagonal, BotStrategyAdaptive}
}

// PlacementPolicyDisplayName returns a human-readable label for a policy
func PlacementPolicyDisplayName(policy string) string {
	switch policy {
	case PlacementPolicyUnbiased:
		return "Unbiased"
	case PlacementPolicyBorder:
		return "Border-biased"
	case PlacementPolicyDiagonal:
		return "Diagonal-avoiding"
	case PlacementPolicyHalf:
		return "Half-board"
	default:
		return policy
	}
}

// ValidPlacementPolicies returns all valid placement policy names
func ValidPlacementPolicies() []string {
	return []string{PlacementPolicyUnbiased, PlacementPolicyBorder, PlacementPolicyDiagonal, PlacementPolicyHalf}
}

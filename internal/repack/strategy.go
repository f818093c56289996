package repack

// Strategy is the per-container plan the orchestrator picks for a move.
type Strategy int

const (
	// StrategyInPlace rewrites catalog metadata without relocating the file.
	StrategyInPlace Strategy = iota
	// StrategyMoveFile relocates the whole container via file-level copy,
	// preserving every entity in it.
	StrategyMoveFile
	// StrategyExtract pulls single assets out of a multi-asset container
	// into new files of their own.
	StrategyExtract
)

func (s Strategy) String() string {
	switch s {
	case StrategyInPlace:
		return "in-place"
	case StrategyMoveFile:
		return "move-file"
	case StrategyExtract:
		return "extract"
	default:
		return "unknown"
	}
}

// ChooseStrategy decides how to process one source container. In-place wins
// when no physical relocation is needed. Extraction is only chosen when the
// target count is strictly less than the container's asset count; equal or
// greater means the whole file moves, avoiding needless per-entity writes.
func ChooseStrategy(samePath bool, targetCount, totalAssets int) Strategy {
	if samePath {
		return StrategyInPlace
	}
	if totalAssets <= 1 || targetCount >= totalAssets {
		return StrategyMoveFile
	}
	return StrategyExtract
}

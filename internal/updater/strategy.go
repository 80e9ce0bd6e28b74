package updater

import "fmt"

// Strategy selects how far each submodule is advanced.
type Strategy string

const (
	// StrategyCommit advances submodules to the latest remote commit.
	StrategyCommit Strategy = "commit"
	// StrategyTag additionally snaps each advanced submodule back to its
	// nearest reachable tag.
	StrategyTag Strategy = "tag"
)

// ParseStrategy validates a raw strategy value. It runs before any other
// work so a bad value never triggers repository I/O.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(raw); s {
	case StrategyCommit, StrategyTag:
		return s, nil
	default:
		return "", fmt.Errorf("invalid strategy %q (must be %q or %q)", raw, StrategyCommit, StrategyTag)
	}
}

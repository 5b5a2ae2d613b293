package exercise

import "strings"

type tierAlias struct {
	tier    Tier
	aliases []string
}

// aliasTable is checked in order and the first tier with a matching alias
// wins. "very high" therefore resolves to advanced through "high".
var aliasTable = []tierAlias{
	{tier: Foundation, aliases: []string{"foundation", "basic", "beginner"}},
	{tier: Intermediate, aliases: []string{"intermediate", "medium"}},
	{tier: Advanced, aliases: []string{"advanced", "high"}},
	{tier: Expert, aliases: []string{"expert", "very high", "master"}},
}

// ResolveTier maps a model-chosen section name to a tier by
// case-insensitive substring match against the alias table.
func ResolveTier(name string) (Tier, bool) {
	lower := strings.ToLower(name)
	for _, entry := range aliasTable {
		for _, alias := range entry.aliases {
			if strings.Contains(lower, alias) {
				return entry.tier, true
			}
		}
	}
	return "", false
}

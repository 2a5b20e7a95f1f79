package data

// Rune trees.
const (
	TreePrecision   = "Precision"
	TreeDomination  = "Domination"
	TreeSorcery     = "Sorcery"
	TreeResolve     = "Resolve"
	TreeInspiration = "Inspiration"
)

var keystoneTrees = map[string]string{
	"Lethal Tempo":         TreePrecision,
	"Fleet Footwork":       TreePrecision,
	"Press the Attack":     TreePrecision,
	"Conqueror":            TreePrecision,
	"Electrocute":          TreeDomination,
	"Dark Harvest":         TreeDomination,
	"Hail of Blades":       TreeDomination,
	"Arcane Comet":         TreeSorcery,
	"Phase Rush":           TreeSorcery,
	"Summon Aery":          TreeSorcery,
	"Grasp of the Undying": TreeResolve,
	"Aftershock":           TreeResolve,
	"Guardian":             TreeResolve,
	"First Strike":         TreeInspiration,
	"Glacial Augment":      TreeInspiration,
	"Unsealed Spellbook":   TreeInspiration,
}

// perk ids are 8xyy where 8x identifies the tree
var perkTrees = map[int]string{
	80: TreePrecision,
	81: TreeDomination,
	82: TreeSorcery,
	83: TreeInspiration,
	84: TreeResolve,
}

// IsKeystone reports whether name is a keystone rune.
func IsKeystone(name string) bool {
	_, ok := keystoneTrees[name]
	return ok
}

// KeystoneTree returns the tree a keystone belongs to, or "Unknown".
func KeystoneTree(name string) string {
	if tree, ok := keystoneTrees[name]; ok {
		return tree
	}
	return "Unknown"
}

// PerkTree returns the tree for a four digit perk id such as 8214.
func PerkTree(perkID int) (string, bool) {
	tree, ok := perkTrees[perkID/100]
	return tree, ok
}

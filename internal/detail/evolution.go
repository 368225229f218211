package detail

import (
	"fmt"
	"strings"

	"github.com/abelbrown/dex/internal/pokeapi"
)

// Stage is one node of a flattened evolution chain.
type Stage struct {
	ID      int
	Name    string
	Depth   int    // 0 for the base stage
	From    string // species this stage evolves from
	Trigger string // how From evolves into this stage
}

// FlattenChain walks the chain depth first. Branches keep upstream order.
func FlattenChain(root pokeapi.ChainLink) ([]Stage, error) {
	var out []Stage
	var walk func(link pokeapi.ChainLink, from string, depth int) error
	walk = func(link pokeapi.ChainLink, from string, depth int) error {
		id, err := pokeapi.IDFromURL(link.Species.URL)
		if err != nil {
			return fmt.Errorf("evolution stage %s: %w", link.Species.Name, err)
		}
		st := Stage{ID: id, Name: link.Species.Name, Depth: depth, From: from}
		if depth > 0 {
			st.Trigger = DescribeTrigger(id, link.EvolutionDetails)
		}
		out = append(out, st)
		for _, next := range link.EvolvesTo {
			if err := walk(next, link.Species.Name, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, "", 0); err != nil {
		return nil, err
	}
	return out, nil
}

// fixedTriggers describe triggers whose conditions upstream leaves empty.
var fixedTriggers = map[string]string{
	"shed":                "level 20, empty spot in party, Poké Ball in bag",
	"spin":                "spin around holding a Sweet",
	"tower-of-darkness":   "train in the Tower of Darkness",
	"tower-of-water":      "train in the Tower of Waters",
	"three-critical-hits": "land three critical hits in a battle",
	"take-damage":         "rock arch in Dusty Bowl after taking at least 49 HP of damage without fainting",
	"agile-style-move":    "use Psyshield Bash in the agile style at least 20 times and level up",
	"strong-style-move":   "use Barb Barrage in the strong style at least 20 times and level up",
	"recoil-damage":       "lose at least 294 HP from recoil damage and level up",
}

// otherTriggers describe the "other" trigger per evolved species ID.
var otherTriggers = map[int]string{
	923:  "walk 1,000 steps outside its Poké Ball in Let's Go mode, then level up",
	925:  "level 25, family size decided by its encryption constant",
	947:  "walk 1,000 steps outside its Poké Ball in Let's Go mode, then level up",
	954:  "walk 1,000 steps outside its Poké Ball in Let's Go mode, then level up",
	964:  "level 38 while in a Union Circle group",
	979:  "use Rage Fist at least 20 times, then level up",
	983:  "level up after defeating three Bisharp holding a Leader's Crest",
	1000: "level up with 999 Gimmighoul Coins in the bag",
}

// DescribeTrigger renders how a stage is reached. The last detail wins when
// upstream lists several.
func DescribeTrigger(id int, details []pokeapi.EvolutionDetail) string {
	if len(details) == 0 {
		return ""
	}
	d := details[len(details)-1]
	if d.Trigger == nil || d.Trigger.Name == "" {
		return ""
	}
	conds := Conditions(d)

	switch name := d.Trigger.Name; name {
	case "level-up":
		return withConditions("level up", conds)
	case "trade":
		return withConditions("trade", conds)
	case "use-item":
		item := "item"
		if d.Item != nil {
			item = d.Item.Name
		}
		return withConditions("use "+item, conds)
	case "other":
		if s, ok := otherTriggers[id]; ok {
			return s
		}
		return withConditions("special conditions", conds)
	default:
		if s, ok := fixedTriggers[name]; ok {
			return s
		}
		return withConditions(strings.ReplaceAll(name, "-", " "), conds)
	}
}

func withConditions(head string, conds []string) string {
	if len(conds) == 0 {
		return head
	}
	return head + " (" + strings.Join(conds, ", ") + ")"
}

// Conditions lists the set conditions of one evolution detail in a fixed
// order.
func Conditions(d pokeapi.EvolutionDetail) []string {
	var out []string
	addInt := func(v *int, format func(int) string) {
		if v != nil {
			out = append(out, format(*v))
		}
	}
	addRef := func(v *pokeapi.NamedResource, prefix string) {
		if v != nil && v.Name != "" {
			out = append(out, prefix+v.Name)
		}
	}

	addInt(d.MinLevel, func(n int) string { return fmt.Sprintf("level %d", n) })
	addInt(d.MinHappiness, func(n int) string { return fmt.Sprintf("happiness %d", n) })
	addInt(d.MinAffection, func(n int) string { return fmt.Sprintf("affection %d", n) })
	addInt(d.MinBeauty, func(n int) string { return fmt.Sprintf("beauty %d", n) })
	addInt(d.Gender, func(n int) string {
		if n == 1 {
			return "female"
		}
		return "male"
	})
	addInt(d.RelativePhysicalStats, func(n int) string {
		switch {
		case n > 0:
			return "attack > defense"
		case n < 0:
			return "attack < defense"
		default:
			return "attack = defense"
		}
	})
	if d.NeedsOverworldRain {
		out = append(out, "needs rain")
	}
	if d.TurnUpsideDown {
		out = append(out, "turn upside down")
	}
	if d.TimeOfDay != "" {
		out = append(out, "during "+d.TimeOfDay)
	}
	addRef(d.KnownMove, "knowing ")
	addRef(d.KnownMoveType, "knowing a move of type ")
	addRef(d.Location, "at ")
	addRef(d.HeldItem, "holding ")
	addRef(d.PartySpecies, "with in party: ")
	addRef(d.PartyType, "party type: ")
	addRef(d.TradeSpecies, "traded for ")
	return out
}

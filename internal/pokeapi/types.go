package pokeapi

// NamedResource is the upstream reference shape: a name plus the URL of the
// full resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceList is a paginated list response (/pokemon/, /pokemon-species/, /type/).
type ResourceList struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

// LocalizedName is a name in a specific language.
type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

// Generation is the /generation/{n} payload. len(PokemonSpecies) is the
// generation's member count.
type Generation struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Names          []LocalizedName `json:"names"`
	MainRegion     NamedResource   `json:"main_region"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

// EnglishName returns the English display name, falling back to the slug.
func (g Generation) EnglishName() string {
	for _, n := range g.Names {
		if n.Language.Name == "en" {
			return n.Name
		}
	}
	return g.Name
}

// TypeDetail is the /type/{name} payload.
type TypeDetail struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Pokemon         []TypeMember    `json:"pokemon"`
	DamageRelations DamageRelations `json:"damage_relations"`
}

// TypeMember is one entry of a type's membership list.
type TypeMember struct {
	Slot    int           `json:"slot"`
	Pokemon NamedResource `json:"pokemon"`
}

// DamageRelations lists attacking types by the multiplier they deal to this type.
type DamageRelations struct {
	DoubleDamageFrom []NamedResource `json:"double_damage_from"`
	HalfDamageFrom   []NamedResource `json:"half_damage_from"`
	NoDamageFrom     []NamedResource `json:"no_damage_from"`
}

// Pokemon is the /pokemon/{id} payload, reduced to the fields dex renders.
type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Height    int              `json:"height"`
	Weight    int              `json:"weight"`
	Species   NamedResource    `json:"species"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Stats     []PokemonStat    `json:"stats"`
	Moves     []PokemonMove    `json:"moves"`
	Cries     Cries            `json:"cries"`
}

// PokemonType is a (slot, type) pair.
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonAbility is an ability reference; IsHidden marks hidden abilities.
type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// PokemonStat is a base stat value.
type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// PokemonMove is a learnable move with per-version-group details.
type PokemonMove struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

// VersionGroupDetail says how and at what level a move is learned in one version group.
type VersionGroupDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

// Cries holds audio URLs. dex only displays them.
type Cries struct {
	Latest string `json:"latest"`
	Legacy string `json:"legacy"`
}

// Species is the /pokemon-species/{id} payload.
type Species struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Names             []LocalizedName `json:"names"`
	Generation        NamedResource   `json:"generation"`
	EvolutionChain    struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	Varieties         []Variety    `json:"varieties"`
}

// FlavorText is one Pokedex entry text.
type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// Variety is one form of a species.
type Variety struct {
	IsDefault bool          `json:"is_default"`
	Pokemon   NamedResource `json:"pokemon"`
}

// EvolutionChain is the /evolution-chain/{id} payload.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is a node in the evolution tree. EvolutionDetails describe how
// the previous stage evolves into this one (empty for the root).
type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail is one set of evolution conditions. Pointer fields are
// null upstream when the condition does not apply.
type EvolutionDetail struct {
	Trigger               *NamedResource `json:"trigger"`
	Item                  *NamedResource `json:"item"`
	HeldItem              *NamedResource `json:"held_item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	MinLevel              *int           `json:"min_level"`
	MinHappiness          *int           `json:"min_happiness"`
	MinAffection          *int           `json:"min_affection"`
	MinBeauty             *int           `json:"min_beauty"`
	Gender                *int           `json:"gender"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
	TimeOfDay             string         `json:"time_of_day"`
}

// Ability is the /ability/{name} payload.
type Ability struct {
	Name          string        `json:"name"`
	EffectEntries []EffectEntry `json:"effect_entries"`
}

// EffectEntry is a localized ability description.
type EffectEntry struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}

// Move is the /move/{name} payload. Power, Accuracy and PP are null for
// status moves and some special cases.
type Move struct {
	Name        string        `json:"name"`
	Type        NamedResource `json:"type"`
	DamageClass NamedResource `json:"damage_class"`
	Power       *int          `json:"power"`
	Accuracy    *int          `json:"accuracy"`
	PP          *int          `json:"pp"`
}

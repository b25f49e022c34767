// Package rules holds the per-category static data: deny-name vocabularies,
// type allow/deny sets, brand and query lists, and the liquor restricted-state
// table. Everything lives in rules.yaml and is compiled once at load.
package rules

import (
	_ "embed"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// tables mirrors the YAML layout.
type tables struct {
	Deny           map[string][]string `yaml:"deny"`
	Types          map[string][]string `yaml:"types"`
	Brands         map[string][]string `yaml:"brands"`
	Queries        map[string][]string `yaml:"queries"`
	WarehouseClubs []warehouseClubYAML `yaml:"warehouse_clubs"`
	ClothingChains []string            `yaml:"clothing_chains"`
	Liquor         liquorYAML          `yaml:"liquor"`
}

type warehouseClubYAML struct {
	Query   string `yaml:"query"`
	Pattern string `yaml:"pattern"`
}

type liquorYAML struct {
	NameCues         []string `yaml:"name_cues"`
	RestrictedStates []string `yaml:"restricted_states"`
}

// WarehouseClub pairs a brand search query with the name pattern that confirms
// a result actually is that brand's club (and not, say, its gas station).
type WarehouseClub struct {
	Query   string
	Pattern Matcher
}

// Rules is the compiled rule set shared by the source fetchers and filters.
type Rules struct {
	// Deny-name matchers.
	ConvenienceWords    Matcher
	ConvenienceSig      Matcher
	SpecialtyCues       Matcher
	GroceryGeneric      Matcher
	NonASCII            Matcher
	PharmacyDeny        Matcher
	PharmacyBigbox      Matcher
	GasEVDeny           Matcher
	BankATMDeny         Matcher
	ClothingDeny        Matcher
	JewelryDeny         Matcher
	PrintShipDeny       Matcher
	ChainDeny           Matcher
	WarehouseDepartment Matcher
	AttractionFieldDeny Matcher
	SportsChainDeny     Matcher
	LiquorConsulting    Matcher
	LiquorNameCues      Matcher
	ClothingChains      Matcher

	// Primary-type sets.
	GroceriesPrimary  TypeSet
	BarFamily         TypeSet
	VenuePrimary      TypeSet
	AttractionsAllow  TypeSet
	AttractionsDeny   TypeSet
	ArtsAllow         TypeSet
	ArtsRankFirst     TypeSet
	SportsAllow       TypeSet
	SportsDeny        TypeSet
	JewelryExcluded   TypeSet
	SpecialtyExcluded TypeSet
	Professional      TypeSet
	ClothingExcluded  TypeSet
	ConvenienceTypes  TypeSet

	// Brand and query fan-out lists, in issue order.
	PharmacyBrands  []string
	GasBrands       []string
	BankBrands      []string
	PackShipBrands  []string
	LiquorBrands    []string
	BarQueries      []string
	AttractionQuery []string
	ArtsQuery       []string
	DiscountQuery   []string
	SpecialtyQuery  []string

	WarehouseClubs []WarehouseClub

	RestrictedStates map[string]bool
}

// Load parses and compiles the embedded rule tables.
func Load() (*Rules, error) {
	var t tables
	if err := yaml.Unmarshal(rulesYAML, &t); err != nil {
		return nil, eris.Wrap(err, "rules: unmarshal rules.yaml")
	}

	r := &Rules{}
	var err error

	deny := func(key string) Matcher {
		m, cerr := CompileUnion(t.Deny[key])
		if cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "rules: compile deny list %q", key)
		}
		return m
	}

	r.ConvenienceWords = deny("convenience")
	r.ConvenienceSig = deny("convenience_signature")
	r.SpecialtyCues = deny("specialty_cues")
	r.GroceryGeneric = deny("grocery_generic")
	r.PharmacyDeny = deny("pharmacy")
	r.PharmacyBigbox = deny("pharmacy_bigbox")
	r.GasEVDeny = deny("gas_ev")
	r.BankATMDeny = deny("bank_atm")
	r.ClothingDeny = deny("clothing")
	r.JewelryDeny = deny("jewelry")
	r.PrintShipDeny = deny("print_ship")
	r.ChainDeny = deny("chain")
	r.WarehouseDepartment = deny("warehouse_departments")
	r.AttractionFieldDeny = deny("attraction_fields")
	r.SportsChainDeny = deny("sports_entertainment")
	r.LiquorConsulting = deny("liquor_consulting")
	if err != nil {
		return nil, err
	}

	r.NonASCII = MustCompilePattern(`[^\x00-\x7F]`)

	r.LiquorNameCues, err = CompileUnion(t.Liquor.NameCues)
	if err != nil {
		return nil, eris.Wrap(err, "rules: compile liquor name cues")
	}
	r.ClothingChains, err = CompileLiteralUnion(t.ClothingChains)
	if err != nil {
		return nil, eris.Wrap(err, "rules: compile clothing chains")
	}

	r.GroceriesPrimary = NewTypeSet(t.Types["groceries_primary"])
	r.BarFamily = NewTypeSet(t.Types["bar_family"])
	r.VenuePrimary = NewTypeSet(t.Types["venue"])
	r.AttractionsAllow = NewTypeSet(t.Types["attractions_allow"])
	r.AttractionsDeny = NewTypeSet(t.Types["attractions_deny"])
	r.ArtsAllow = NewTypeSet(t.Types["arts_allow"])
	r.ArtsRankFirst = NewTypeSet(t.Types["arts_rank_first"])
	r.SportsAllow = NewTypeSet(t.Types["sports_allow"])
	r.SportsDeny = NewTypeSet(t.Types["sports_deny"])
	r.JewelryExcluded = NewTypeSet(t.Types["jewelry_excluded"])
	r.SpecialtyExcluded = NewTypeSet(t.Types["specialty_excluded"])
	r.Professional = NewTypeSet(t.Types["professional"])
	r.ClothingExcluded = NewTypeSet(t.Types["clothing_excluded"])
	r.ConvenienceTypes = NewTypeSet(t.Types["convenience"])

	r.PharmacyBrands = t.Brands["pharmacy"]
	r.GasBrands = t.Brands["gas"]
	r.BankBrands = t.Brands["bank"]
	r.PackShipBrands = t.Brands["pack_ship"]
	r.LiquorBrands = t.Brands["liquor"]

	r.BarQueries = t.Queries["bar"]
	r.AttractionQuery = t.Queries["attractions"]
	r.ArtsQuery = t.Queries["arts_culture"]
	r.DiscountQuery = t.Queries["discount_thrift"]
	r.SpecialtyQuery = t.Queries["specialty_markets"]

	for _, wc := range t.WarehouseClubs {
		m, cerr := CompilePattern(wc.Pattern)
		if cerr != nil {
			return nil, eris.Wrapf(cerr, "rules: compile warehouse pattern %q", wc.Query)
		}
		r.WarehouseClubs = append(r.WarehouseClubs, WarehouseClub{Query: wc.Query, Pattern: m})
	}

	r.RestrictedStates = make(map[string]bool, len(t.Liquor.RestrictedStates))
	for _, s := range t.Liquor.RestrictedStates {
		r.RestrictedStates[s] = true
	}

	return r, nil
}

var (
	defaultRules *Rules
	defaultOnce  sync.Once
)

// Default returns the shared compiled rule set. The tables are embedded, so a
// load failure is a build defect and panics.
func Default() *Rules {
	defaultOnce.Do(func() {
		r, err := Load()
		if err != nil {
			panic(err)
		}
		defaultRules = r
	})
	return defaultRules
}

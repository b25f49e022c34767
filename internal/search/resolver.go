package search

// Category identifies the retrieval + filter strategy for a request.
type Category string

// Category keys, in resolver priority order.
const (
	CategoryPrintShip       Category = "print_ship_only"
	CategoryPrintShipHybrid Category = "print_ship_and_others"
	CategoryGroceries       Category = "groceries"
	CategorySpecialty       Category = "specialty_markets"
	CategoryPharmacy        Category = "pharmacy"
	CategoryGasEV           Category = "gas_ev"
	CategoryBankATM         Category = "bank_atm"
	CategoryClothing        Category = "clothing"
	CategoryJewelry         Category = "jewelry"
	CategoryBar             Category = "bar"
	CategoryLiquor          Category = "liquor"
	CategoryWarehouseClubs  Category = "warehouse_clubs"
	CategoryAttractions     Category = "attractions"
	CategoryArtsCulture     Category = "arts_culture"
	CategorySports          Category = "sports"
	CategoryDiscountThrift  Category = "discount_thrift"
	CategoryDefault         Category = "default"
)

const postOfficeType = "post_office"

func contains(tokens []string, t string) bool {
	for _, tok := range tokens {
		if tok == t {
			return true
		}
	}
	return false
}

func hasAny(tokens []string, candidates ...string) bool {
	for _, c := range candidates {
		if contains(tokens, c) {
			return true
		}
	}
	return false
}

func exactly(tokens []string, want ...string) bool {
	if len(tokens) != len(want) {
		return false
	}
	for _, w := range want {
		if !contains(tokens, w) {
			return false
		}
	}
	return true
}

// resolution is one entry of the ordered decision list.
type resolution struct {
	category Category
	match    func(tokens []string) bool
}

// resolutionOrder is evaluated top to bottom; the first match wins. Several
// predicates can be true at once (a token set may satisfy both the specialty
// signature and the fallback), so the order is load-bearing.
var resolutionOrder = []resolution{
	{CategoryPrintShip, func(t []string) bool {
		return contains(t, postOfficeType) && len(WithoutPostOffice(t)) == 0
	}},
	{CategoryPrintShipHybrid, func(t []string) bool {
		return contains(t, postOfficeType) && len(WithoutPostOffice(t)) > 0
	}},
	{CategoryGroceries, func(t []string) bool {
		return exactly(t, "grocery_store", "supermarket")
	}},
	{CategorySpecialty, func(t []string) bool {
		return hasAny(t, "asian_grocery_store", "butcher_shop", "food_store", "market")
	}},
	{CategoryPharmacy, func(t []string) bool {
		return hasAny(t, "pharmacy", "drugstore")
	}},
	{CategoryGasEV, func(t []string) bool {
		return hasAny(t, "gas_station", "ev_charging_station", "electric_vehicle_charging_station")
	}},
	{CategoryBankATM, func(t []string) bool {
		return hasAny(t, "bank", "atm")
	}},
	{CategoryClothing, func(t []string) bool {
		return exactly(t, "clothing_store")
	}},
	{CategoryJewelry, func(t []string) bool {
		return exactly(t, "jewelry_and_accessories")
	}},
	{CategoryBar, func(t []string) bool {
		return hasAny(t, "bar", "pub", "wine_bar", "cocktail_bar", "sports_bar")
	}},
	{CategoryLiquor, func(t []string) bool {
		return contains(t, "liquor_store")
	}},
	{CategoryWarehouseClubs, func(t []string) bool {
		return hasAny(t, "warehouse_store", "wholesale_store", "superstore")
	}},
	{CategoryAttractions, func(t []string) bool {
		return hasAny(t, "tourist_attraction", "museum", "historical_place")
	}},
	{CategoryArtsCulture, func(t []string) bool {
		return hasAny(t, "art_gallery", "performing_arts_theater", "concert_hall", "cultural_center")
	}},
	{CategorySports, func(t []string) bool {
		return hasAny(t, "gym", "fitness_center", "golf_course", "stadium", "sports_complex")
	}},
	{CategoryDiscountThrift, func(t []string) bool {
		return hasAny(t, "discount_store", "thrift_store", "variety_store")
	}},
}

// Resolve picks exactly one category for the requested type tokens. The
// fallback always resolves; Resolve cannot fail.
func Resolve(tokens []string) Category {
	for _, r := range resolutionOrder {
		if r.match(tokens) {
			return r.category
		}
	}
	return CategoryDefault
}

// WithoutPostOffice returns the tokens minus the shipping/post token, for the
// hybrid category's generic leg.
func WithoutPostOffice(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != postOfficeType {
			out = append(out, t)
		}
	}
	return out
}

// Mode is the coarse classification reported alongside the finer category.
func Mode(tokens []string) string {
	if exactly(tokens, "grocery_store", "supermarket") {
		return "groceries"
	}
	if hasAny(tokens, "asian_grocery_store", "butcher_shop", "food_store", "market") {
		return "specialty_markets"
	}
	return "generic"
}

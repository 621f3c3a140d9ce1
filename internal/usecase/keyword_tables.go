package usecase

// weightedKeyword pairs a lowercase needle with the points it contributes.
// Tables are ordered slices so label order follows declaration order.
type weightedKeyword struct {
	keyword string
	weight  int
}

// positiveKeywords are eco-friendly terms, matched against text or title
var positiveKeywords = []weightedKeyword{
	{"organic", 12}, {"eco-friendly", 10}, {"sustainable", 10}, {"recycled", 9},
	{"recyclable", 8}, {"biodegradable", 9}, {"bamboo", 11}, {"hemp", 11},
	{"fair trade", 9}, {"natural", 6}, {"cruelty-free", 8}, {"vegan", 7},
	{"certified", 7}, {"carbon neutral", 12}, {"zero waste", 11}, {"renewable", 10},
	{"water-saving", 8}, {"energy-efficient", 8}, {"plastic-free", 10}, {"handmade", 7},
	{"local", 6}, {"chemical-free", 9}, {"non-toxic", 8}, {"compostable", 9},
}

// negativeKeywords are eco-unfriendly terms, matched against text or title
var negativeKeywords = []weightedKeyword{
	{"plastic", -10}, {"single-use", -15}, {"non-recyclable", -12}, {"toxic", -18},
	{"polyester", -8}, {"synthetic", -7}, {"hazardous", -15}, {"chemical", -8},
	{"petroleum", -12}, {"disposable", -12}, {"greenwashing", -16}, {"fast fashion", -12},
	{"wasteful", -12}, {"microplastic", -14}, {"pvc", -12}, {"deforestation", -16},
}

// goodMaterials are matched against text only
var goodMaterials = []weightedKeyword{
	{"organic cotton", 11}, {"bamboo", 11}, {"hemp", 11}, {"linen", 10},
	{"wool", 8}, {"jute", 10}, {"cork", 10}, {"wood", 8}, {"glass", 8},
	{"metal", 7}, {"recycled", 9}, {"silk", 6}, {"ramie", 10},
}

// badMaterials are matched against text only
var badMaterials = []weightedKeyword{
	{"polyester", -8}, {"plastic", -10}, {"acrylic", -7}, {"nylon", -7}, {"spandex", -5},
}

// Packaging tiers; the first tier with any hit wins.
var (
	ecoPackagingTerms     = []string{"recyclable packaging", "eco packaging", "eco-friendly packaging"}
	plasticPackagingTerms = []string{"plastic packaging"}
	paperPackagingTerms   = []string{"cardboard", "paper packaging", "paper box"}
)

const (
	ecoPackagingBonus       = 6
	plasticPackagingPenalty = -5
	paperPackagingBonus     = 5
)

type certification struct {
	keyword string
	label   string
}

// certifications each add certificationBonus when present in text
var certifications = []certification{
	{"fsc", "FSC Certified"},
	{"usda organic", "USDA Organic"},
	{"fair trade", "Fair Trade"},
	{"b corp", "B Corporation"},
	{"energy star", "Energy Star"},
}

const certificationBonus = 7

// Terms probed directly by the greenwashing check and the derived lists
const (
	termEcoFriendly   = "eco-friendly"
	termSustainable   = "sustainable"
	termPlastic       = "plastic"
	termRecyclable    = "recyclable"
	termRecycled      = "recycled"
	termOrganic       = "organic"
	termCotton        = "cotton"
	termBiodegradable = "biodegradable"
	termNatural       = "natural"
	termSingleUse     = "single-use"
	termToxic         = "toxic"
	termChemical      = "chemical"
	termChemicalFree  = "chemical-free"
)

var probeTerms = []string{
	termEcoFriendly, termSustainable, termPlastic, termRecyclable, termRecycled,
	termOrganic, termCotton, termBiodegradable, termNatural, termSingleUse,
	termToxic, termChemical, termChemicalFree,
}

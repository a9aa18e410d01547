// internal/fmv/rates.go
package fmv

import "chatnil/internal/models"

// ==========================
// Valuation Rate Tables
// ==========================

// sportTiers ranks sports by typical NIL opportunity (0-10 points).
var sportTiers = map[string]float64{
	"football":   10,
	"basketball": 10,
	"baseball":   9,
	"softball":   9,
	"soccer":     8,
	"volleyball": 7,
	"hockey":     7,
	"track":      6,
	"wrestling":  6,
	"gymnastics": 6,
	"swimming":   5,
	"lacrosse":   5,
	"golf":       4,
	"tennis":     4,
}

const defaultSportTier = 3

// positionValues awards premium positions extra marketability (0-5 points).
var positionValues = map[string]float64{
	"qb":             5,
	"quarterback":    5,
	"rb":             4,
	"running back":   4,
	"wr":             4,
	"wide receiver":  4,
	"te":             3,
	"tight end":      3,
	"pg":             5,
	"point guard":    5,
	"sg":             4,
	"shooting guard": 4,
	"sf":             3,
	"small forward":  3,
	"pitcher":        5,
	"catcher":        4,
	"shortstop":      4,
}

const defaultPositionValue = 2

// stateNILMaturity scores how developed a state's NIL market is
// (0-8 points). Unlisted states default to emerging.
var stateNILMaturity = map[string]float64{
	"CA": 8, "FL": 8, "TX": 8, "NY": 8, "GA": 8,
	"KY": 5, "OH": 5, "IN": 5, "TN": 5, "IL": 5,
	"PA": 5, "NC": 5, "MI": 5, "AZ": 5, "VA": 5,
}

const defaultStateMaturity = 2

// largeMarketCities and mediumMarketCities size the local sponsor pool.
var largeMarketCities = map[string]bool{
	"los angeles": true, "new york": true, "chicago": true,
	"houston": true, "phoenix": true, "philadelphia": true,
	"san diego": true, "dallas": true, "san francisco": true,
	"boston": true, "atlanta": true, "miami": true,
}

var mediumMarketCities = map[string]bool{
	"columbus": true, "indianapolis": true, "nashville": true,
	"austin": true, "denver": true, "seattle": true,
	"detroit": true, "minneapolis": true, "charlotte": true,
	"portland": true,
}

// baseDealValues are national average rates before the athlete
// multiplier is applied. Autograph sessions cap at $500 base.
var baseDealValues = map[string]models.DealValueRange{
	models.DealTypeSocialMedia: {DealType: models.DealTypeSocialMedia, Low: 100, Mid: 500, High: 2000},
	models.DealTypeEndorsement: {DealType: models.DealTypeEndorsement, Low: 1000, Mid: 5000, High: 20000},
	models.DealTypeAppearance:  {DealType: models.DealTypeAppearance, Low: 500, Mid: 2000, High: 5000},
	models.DealTypeAutograph:   {DealType: models.DealTypeAutograph, Low: 50, Mid: 200, High: 500},
	models.DealTypeMerchandise: {DealType: models.DealTypeMerchandise, Low: 250, Mid: 1500, High: 5000},
	models.DealTypeCamp:        {DealType: models.DealTypeCamp, Low: 200, Mid: 1000, High: 3000},
	models.DealTypeOther:       {DealType: models.DealTypeOther, Low: 100, Mid: 500, High: 2000},
}

// TierFor maps a 0-100 valuation factor to its tier.
func TierFor(factor float64) string {
	switch {
	case factor >= 90:
		return models.TierElite
	case factor >= 75:
		return models.TierHigh
	case factor >= 55:
		return models.TierMedium
	case factor >= 35:
		return models.TierDeveloping
	default:
		return models.TierEmerging
	}
}

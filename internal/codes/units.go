package codes

// UnitCode is a unit of measure defined in UNECE/CEFACT Trade
// Facilitation Recommendations No.20 and No.21.
type UnitCode string

const (
	UnitOne        UnitCode = "C62" // aka "unit"
	UnitPiece      UnitCode = "H87" // aka "item"
	UnitHour       UnitCode = "HUR"
	UnitDay        UnitCode = "DAY"
	UnitLiter      UnitCode = "LTR"
	UnitCubicMeter UnitCode = "MTQ"
	UnitKilogram   UnitCode = "KGM"
	UnitMeter      UnitCode = "MTR"
	UnitTon        UnitCode = "TNE"
)

var unitSymbols = map[UnitCode]string{
	UnitOne:        "unit",
	UnitPiece:      "pc",
	UnitHour:       "h",
	UnitDay:        "day",
	UnitLiter:      "l",
	UnitCubicMeter: "m³",
	UnitKilogram:   "kg",
	UnitMeter:      "m",
	UnitTon:        "t",
}

// Valid reports whether u is a known unit code.
func (u UnitCode) Valid() bool {
	_, ok := unitSymbols[u]
	return ok
}

// Symbol returns a short display symbol for the unit, or "" if unknown.
func (u UnitCode) Symbol() string {
	return unitSymbols[u]
}

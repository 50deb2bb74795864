package utils

// Airports holds the origin/dest resolution of a free-text scan.
type Airports struct {
	Origin string
	Dest   string
}

// Constants
const (
	DATE_LAYOUT = "2006-01-02"
	TIME_LAYOUT = "15:04"
)

// CityMap maps known city names (lower-case) to IATA airport codes.
// Matching is case-insensitive substring, so multi-word names work in
// running text.
var CityMap = map[string]string{
	"bangkok":     "BKK",
	"בנגקוק":      "BKK",
	"phuket":      "HKT",
	"פוקט":        "HKT",
	"chiang mai":  "CNX",
	"צ'יאנג מאי":  "CNX",
	"koh samui":   "USM",
	"קוסמוי":      "USM",
	"krabi":       "KBV",
	"קראבי":       "KBV",
	"tel aviv":    "TLV",
	"תל אביב":     "TLV",
	"israel":      "TLV",
}

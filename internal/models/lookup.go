package models

// Lookup entities pair a numeric identifier with a display name. They are
// reference data: fetched from the upstream, held immutable until the cache
// TTL lapses, and used only to resolve a display name back to its identifier
// before submission.

type University struct {
	UniversityID int    `json:"UniversityID"`
	University   string `json:"University"`
}

type City struct {
	CityID int    `json:"CityID"`
	City   string `json:"City"`
}

type Country struct {
	CountryID int    `json:"CountryID"`
	Country   string `json:"Country"`
}

type Currency struct {
	CurrencyID int    `json:"CurrencyID"`
	Currency   string `json:"Currency"`
}

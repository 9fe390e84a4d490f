package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dirm02/course-admin-api/internal/cache"
	"github.com/dirm02/course-admin-api/internal/models"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
)

type lookupClient interface {
	ListUniversities(ctx context.Context) ([]models.University, error)
	ListCities(ctx context.Context) ([]models.City, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

// LookupService serves the four reference lists. Each list is fetched from
// the upstream once and held in the lookup cache until its TTL lapses.
type LookupService struct {
	client lookupClient
	cache  *cache.LookupCache
	logger *zap.Logger
}

// NewLookupService creates a lookup service.
func NewLookupService(client lookupClient, lookups *cache.LookupCache, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{client: client, cache: lookups, logger: logger}
}

// Universities returns the institution list, serving from cache when warm.
func (s *LookupService) Universities(ctx context.Context) ([]models.University, error) {
	if list, ok := s.cache.Universities(); ok {
		return list, nil
	}
	list, err := s.client.ListUniversities(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetUniversities(list)
	return list, nil
}

// Cities returns the city list, serving from cache when warm.
func (s *LookupService) Cities(ctx context.Context) ([]models.City, error) {
	if list, ok := s.cache.Cities(); ok {
		return list, nil
	}
	list, err := s.client.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetCities(list)
	return list, nil
}

// Countries returns the country list, serving from cache when warm.
func (s *LookupService) Countries(ctx context.Context) ([]models.Country, error) {
	if list, ok := s.cache.Countries(); ok {
		return list, nil
	}
	list, err := s.client.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetCountries(list)
	return list, nil
}

// Currencies returns the currency list, serving from cache when warm.
func (s *LookupService) Currencies(ctx context.Context) ([]models.Currency, error) {
	if list, ok := s.cache.Currencies(); ok {
		return list, nil
	}
	list, err := s.client.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetCurrencies(list)
	return list, nil
}

// Contains reports whether name contains input, ignoring case. An empty
// input matches everything, so filtering with it returns the full list.
func Contains(name, input string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(input))
}

// FilterUniversities keeps entries whose display name contains input,
// preserving the original order.
func FilterUniversities(list []models.University, input string) []models.University {
	filtered := make([]models.University, 0, len(list))
	for _, entry := range list {
		if Contains(entry.University, input) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterCities keeps entries whose display name contains input.
func FilterCities(list []models.City, input string) []models.City {
	filtered := make([]models.City, 0, len(list))
	for _, entry := range list {
		if Contains(entry.City, input) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterCountries keeps entries whose display name contains input.
func FilterCountries(list []models.Country, input string) []models.Country {
	filtered := make([]models.Country, 0, len(list))
	for _, entry := range list {
		if Contains(entry.Country, input) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterCurrencies keeps entries whose code contains input.
func FilterCurrencies(list []models.Currency, input string) []models.Currency {
	filtered := make([]models.Currency, 0, len(list))
	for _, entry := range list {
		if Contains(entry.Currency, input) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Resolution maps a typed display name back to its identifier by exact,
// case-sensitive match. An empty name resolves to nothing; a non-matching
// name yields ErrUnresolvedRef so callers can decide whether to proceed.

// ResolveUniversityID resolves an institution display name to its identifier.
func (s *LookupService) ResolveUniversityID(ctx context.Context, name string) (*int, error) {
	if name == "" {
		return nil, nil
	}
	list, err := s.Universities(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range list {
		if entry.University == name {
			id := entry.UniversityID
			return &id, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrUnresolvedRef, "unknown institution: "+name)
}

// ResolveCityID resolves a city display name to its identifier.
func (s *LookupService) ResolveCityID(ctx context.Context, name string) (*int, error) {
	if name == "" {
		return nil, nil
	}
	list, err := s.Cities(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range list {
		if entry.City == name {
			id := entry.CityID
			return &id, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrUnresolvedRef, "unknown city: "+name)
}

// ResolveCountryID resolves a country display name to its identifier.
func (s *LookupService) ResolveCountryID(ctx context.Context, name string) (*int, error) {
	if name == "" {
		return nil, nil
	}
	list, err := s.Countries(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range list {
		if entry.Country == name {
			id := entry.CountryID
			return &id, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrUnresolvedRef, "unknown country: "+name)
}

// ResolveCurrencyID resolves a currency code to its identifier.
func (s *LookupService) ResolveCurrencyID(ctx context.Context, code string) (*int, error) {
	if code == "" {
		return nil, nil
	}
	list, err := s.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range list {
		if entry.Currency == code {
			id := entry.CurrencyID
			return &id, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrUnresolvedRef, "unknown currency: "+code)
}

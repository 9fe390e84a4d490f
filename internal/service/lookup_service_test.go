package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dirm02/course-admin-api/internal/cache"
	"github.com/dirm02/course-admin-api/internal/models"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
)

type mockLookupClient struct {
	universities []models.University
	cities       []models.City
	countries    []models.Country
	currencies   []models.Currency
	calls        map[string]int
	err          error
}

func (m *mockLookupClient) count(key string) {
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[key]++
}

func (m *mockLookupClient) ListUniversities(ctx context.Context) ([]models.University, error) {
	m.count("universities")
	return m.universities, m.err
}

func (m *mockLookupClient) ListCities(ctx context.Context) ([]models.City, error) {
	m.count("cities")
	return m.cities, m.err
}

func (m *mockLookupClient) ListCountries(ctx context.Context) ([]models.Country, error) {
	m.count("countries")
	return m.countries, m.err
}

func (m *mockLookupClient) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	m.count("currencies")
	return m.currencies, m.err
}

func newLookupFixture(client *mockLookupClient) *LookupService {
	return NewLookupService(client, cache.NewLookupCache(time.Minute, time.Minute), zap.NewNop())
}

func TestLookupServiceFetchesOncePerTTL(t *testing.T) {
	client := &mockLookupClient{universities: []models.University{{UniversityID: 7, University: "MIT"}}}
	svc := newLookupFixture(client)

	for i := 0; i < 3; i++ {
		list, err := svc.Universities(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, 1, client.calls["universities"])
}

func TestLookupServiceErrorNotCached(t *testing.T) {
	client := &mockLookupClient{err: appErrors.Clone(appErrors.ErrUpstream, "down")}
	svc := newLookupFixture(client)

	_, err := svc.Cities(context.Background())
	require.Error(t, err)
	_, err = svc.Cities(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, client.calls["cities"], "failures must not warm the cache")
}

func TestFilterCitiesSubstringCaseInsensitive(t *testing.T) {
	list := []models.City{
		{CityID: 1, City: "London"},
		{CityID: 2, City: "Paris"},
		{CityID: 3, City: "Londonderry"},
	}

	filtered := FilterCities(list, "lon")
	require.Len(t, filtered, 2)
	assert.Equal(t, "London", filtered[0].City)
	assert.Equal(t, "Londonderry", filtered[1].City)

	// Match anywhere, not just the prefix.
	filtered = FilterCities(list, "DERRY")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Londonderry", filtered[0].City)
}

func TestFilterEmptyInputReturnsFullList(t *testing.T) {
	list := []models.Country{{CountryID: 1, Country: "France"}, {CountryID: 2, Country: "Japan"}}
	assert.Equal(t, list, FilterCountries(list, ""))
}

func TestFilterNoMatchReturnsEmpty(t *testing.T) {
	list := []models.University{{UniversityID: 1, University: "MIT"}}
	assert.Empty(t, FilterUniversities(list, "oxford"))
}

func TestResolveUniversityIDExactMatch(t *testing.T) {
	client := &mockLookupClient{universities: []models.University{
		{UniversityID: 7, University: "MIT"},
		{UniversityID: 8, University: "ETH"},
	}}
	svc := newLookupFixture(client)

	id, err := svc.ResolveUniversityID(context.Background(), "MIT")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, 7, *id)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	client := &mockLookupClient{universities: []models.University{{UniversityID: 7, University: "MIT"}}}
	svc := newLookupFixture(client)

	id, err := svc.ResolveUniversityID(context.Background(), "mit")
	require.Error(t, err)
	assert.Nil(t, id)
	assert.Equal(t, appErrors.ErrUnresolvedRef.Code, appErrors.FromError(err).Code)
}

func TestResolveEmptyNameIsAbsent(t *testing.T) {
	client := &mockLookupClient{}
	svc := newLookupFixture(client)

	id, err := svc.ResolveCurrencyID(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Zero(t, client.calls["currencies"], "empty name must not trigger a fetch")
}

func TestResolveCurrencyID(t *testing.T) {
	client := &mockLookupClient{currencies: []models.Currency{
		{CurrencyID: 1, Currency: "USD"},
		{CurrencyID: 2, Currency: "EUR"},
	}}
	svc := newLookupFixture(client)

	id, err := svc.ResolveCurrencyID(context.Background(), "EUR")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, 2, *id)
}

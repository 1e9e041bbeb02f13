package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabemap/pkg/ratelimit"
	"tabemap/pkg/utils"
)

func newTestPlacesService(baseURL string) *PlacesService {
	return &PlacesService{
		client:     &http.Client{Timeout: time.Second},
		limiter:    ratelimit.New(time.Minute, 500),
		apiKey:     "test-key",
		placesURL:  baseURL,
		geocodeURL: baseURL + "/geocode",
	}
}

func TestAutocompleteRejectsOutOfRangeInput(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"suggestions":[]}`))
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	assert.Empty(t, svc.Autocomplete(context.Background(), "ab", "", "caller"))
	long := make([]rune, 65)
	for i := range long {
		long[i] = 'あ'
	}
	assert.Empty(t, svc.Autocomplete(context.Background(), string(long), "", "caller"))
	assert.Zero(t, atomic.LoadInt32(&hits), "out-of-range input must not reach the provider")
}

func TestAutocompleteMapsSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		w.Write([]byte(`{
			"suggestions": [
				{"placePrediction": {
					"placeId": "ChIJ123",
					"structuredFormat": {
						"mainText": {"text": "AFURI 恵比寿"},
						"secondaryText": {"text": "日本、東京都渋谷区恵比寿"}
					}
				}},
				{}
			]
		}`))
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	predictions := svc.Autocomplete(context.Background(), "afuri", "session-1", "caller")
	require.Len(t, predictions, 1, "suggestions without a prediction are dropped")
	assert.Equal(t, "ChIJ123", predictions[0].PlaceID)
	assert.Equal(t, "AFURI 恵比寿", predictions[0].PrimaryText)
	assert.Equal(t, "日本、東京都渋谷区恵比寿", predictions[0].SecondaryText)
}

func TestAutocompleteRateLimitDegradesToEmpty(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"suggestions":[]}`))
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	for i := 0; i < placesRequestLimit; i++ {
		svc.Autocomplete(context.Background(), "ramen", "", "caller")
	}
	assert.Empty(t, svc.Autocomplete(context.Background(), "ramen", "", "caller"))
	assert.Equal(t, int32(placesRequestLimit), atomic.LoadInt32(&hits), "the call past the limit must not reach the provider")
}

func TestDetailsRotatesSessionToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Goog-FieldMask"))
		w.Write([]byte(`{
			"id": "ChIJ123",
			"displayName": {"text": "AFURI 恵比寿"},
			"formattedAddress": "日本、〒150-0013 東京都渋谷区恵比寿1-1-7",
			"location": {"latitude": 35.646, "longitude": 139.71}
		}`))
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	details, err := svc.Details(context.Background(), "ChIJ123", "session-1", "caller")
	require.NoError(t, err)
	assert.Equal(t, "ChIJ123", details.PlaceID)
	assert.Equal(t, "AFURI 恵比寿", details.Name)
	assert.NotEmpty(t, details.SessionToken)
	assert.NotEqual(t, "session-1", details.SessionToken, "a successful details call closes the session")
	require.NotNil(t, details.Lat)
	assert.Equal(t, 35.646, *details.Lat)
}

func TestDetailsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("rate-limited call must not reach the provider")
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)
	for i := 0; i < placesRequestLimit; i++ {
		svc.limiter.Allow("caller", placesRequestLimit)
	}

	_, err := svc.Details(context.Background(), "ChIJ123", "", "caller")
	assert.ErrorIs(t, err, utils.ErrRateLimited)
}

func TestDetailsProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	_, err := svc.Details(context.Background(), "ChIJ123", "", "caller")
	assert.ErrorIs(t, err, utils.ErrPlacesUnavailable)
}

func TestGeocodeParsesLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "東京都渋谷区道玄坂2-10-7", r.URL.Query().Get("address"))
		w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":35.6581,"lng":139.7017}}}]}`))
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	lat, lng := svc.Geocode(context.Background(), "東京都渋谷区道玄坂2-10-7")
	require.NotNil(t, lat)
	require.NotNil(t, lng)
	assert.Equal(t, 35.6581, *lat)
	assert.Equal(t, 139.7017, *lng)
}

func TestGeocodeNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	svc := newTestPlacesService(server.URL)

	lat, lng := svc.Geocode(context.Background(), "nowhere at all")
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestFormatJapaneseAddress(t *testing.T) {
	components := []addressComponent{
		{LongText: "7", Types: []string{"street_number"}},
		{LongText: "10", Types: []string{"sublocality_level_4"}},
		{LongText: "2丁目", Types: []string{"sublocality_level_3"}},
		{LongText: "道玄坂", Types: []string{"sublocality_level_2"}},
		{LongText: "渋谷区", Types: []string{"locality"}},
		{LongText: "東京都", Types: []string{"administrative_area_level_1"}},
	}
	got := formatJapaneseAddress(components, "fallback")
	assert.Equal(t, "東京都渋谷区道玄坂2丁目-10-7", got)
}

func TestFormatJapaneseAddressAppendsBuilding(t *testing.T) {
	components := []addressComponent{
		{LongText: "東京都", Types: []string{"administrative_area_level_1"}},
		{LongText: "渋谷区", Types: []string{"locality"}},
		{LongText: "新大宗ビル", Types: []string{"premise"}},
		{LongText: "1F", Types: []string{"subpremise"}},
	}
	got := formatJapaneseAddress(components, "fallback")
	assert.Equal(t, "東京都渋谷区 新大宗ビル 1F", got)
}

func TestFormatJapaneseAddressFallsBack(t *testing.T) {
	assert.Equal(t, "flat address", formatJapaneseAddress(nil, "flat address"))

	unknown := []addressComponent{{LongText: "JP", Types: []string{"country"}}}
	assert.Equal(t, "flat address", formatJapaneseAddress(unknown, "flat address"))
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tabemap/internal/models/response_models"
	"tabemap/pkg/ratelimit"
	"tabemap/pkg/utils"
)

const (
	autocompleteMinChars = 3
	autocompleteMaxChars = 64

	// provider calls allowed per caller token per limiter window
	placesRequestLimit = 100
)

// PlacesServiceInterface proxies the external place-search provider. All
// operations are read-only on our own store. Autocomplete and Geocode degrade
// to empty results on any failure so registration stays possible by manual
// entry; Details is the one call whose failure the caller needs to see.
type PlacesServiceInterface interface {
	Autocomplete(ctx context.Context, input, sessionToken, callerToken string) []response_models.Prediction
	Details(ctx context.Context, placeID, sessionToken, callerToken string) (*response_models.PlaceDetails, error)
	Geocode(ctx context.Context, address string) (*float64, *float64)
}

type PlacesService struct {
	client     *http.Client
	limiter    *ratelimit.Limiter
	apiKey     string
	placesURL  string
	geocodeURL string
}

func NewPlacesService(limiter *ratelimit.Limiter) PlacesServiceInterface {
	return &PlacesService{
		client:     &http.Client{Timeout: 10 * time.Second},
		limiter:    limiter,
		apiKey:     os.Getenv("GOOGLE_PLACES_SERVER_KEY"),
		placesURL:  "https://places.googleapis.com/v1",
		geocodeURL: "https://maps.googleapis.com/maps/api/geocode/json",
	}
}

type autocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction *struct {
			PlaceID string `json:"placeId"`
			Text    struct {
				Text string `json:"text"`
			} `json:"text"`
			StructuredFormat struct {
				MainText struct {
					Text string `json:"text"`
				} `json:"mainText"`
				SecondaryText struct {
					Text string `json:"text"`
				} `json:"secondaryText"`
			} `json:"structuredFormat"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

func (p *PlacesService) Autocomplete(ctx context.Context, input, sessionToken, callerToken string) []response_models.Prediction {
	n := utf8.RuneCountInString(input)
	if n < autocompleteMinChars || n > autocompleteMaxChars {
		return []response_models.Prediction{}
	}
	if !p.limiter.Allow(callerToken, placesRequestLimit) {
		return []response_models.Prediction{}
	}
	if p.apiKey == "" {
		log.Println("GOOGLE_PLACES_SERVER_KEY is not set; autocomplete disabled")
		return []response_models.Prediction{}
	}

	payload := map[string]string{
		"input":        input,
		"languageCode": "ja",
		"regionCode":   "jp",
	}
	if sessionToken != "" {
		payload["sessionToken"] = sessionToken
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.placesURL+"/places:autocomplete", bytes.NewReader(body))
	if err != nil {
		return []response_models.Prediction{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("Autocomplete request failed: %v", err)
		return []response_models.Prediction{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Autocomplete returned %d", resp.StatusCode)
		return []response_models.Prediction{}
	}

	var decoded autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return []response_models.Prediction{}
	}

	predictions := make([]response_models.Prediction, 0, len(decoded.Suggestions))
	for _, s := range decoded.Suggestions {
		pp := s.PlacePrediction
		if pp == nil {
			continue
		}
		primary := pp.Text.Text
		if primary == "" {
			primary = pp.StructuredFormat.MainText.Text
		}
		predictions = append(predictions, response_models.Prediction{
			PlaceID:       pp.PlaceID,
			PrimaryText:   primary,
			SecondaryText: pp.StructuredFormat.SecondaryText.Text,
		})
	}
	return predictions
}

type addressComponent struct {
	LongText string   `json:"longText"`
	Types    []string `json:"types"`
}

type detailsResponse struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	Location         *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	AddressComponents []addressComponent `json:"addressComponents"`
}

// Details resolves one selected prediction. The returned payload carries a
// freshly rotated session token: a successful details call closes the
// provider's search session, so the client starts the next search anew.
func (p *PlacesService) Details(ctx context.Context, placeID, sessionToken, callerToken string) (*response_models.PlaceDetails, error) {
	if !p.limiter.Allow(callerToken, placesRequestLimit) {
		return nil, utils.ErrRateLimited
	}
	if p.apiKey == "" {
		log.Println("GOOGLE_PLACES_SERVER_KEY is not set; details disabled")
		return nil, utils.ErrPlacesUnavailable
	}

	params := url.Values{}
	params.Set("languageCode", "ja")
	if sessionToken != "" {
		params.Set("sessionToken", sessionToken)
	}
	endpoint := fmt.Sprintf("%s/places/%s?%s", p.placesURL, url.PathEscape(placeID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, utils.ErrPlacesUnavailable
	}
	req.Header.Set("X-Goog-Api-Key", p.apiKey)
	req.Header.Set("X-Goog-FieldMask", "id,displayName,formattedAddress,location,addressComponents")

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("Details request failed: %v", err)
		return nil, utils.ErrPlacesUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Details returned %d for place %s", resp.StatusCode, placeID)
		return nil, utils.ErrPlacesUnavailable
	}

	var decoded detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, utils.ErrPlacesUnavailable
	}

	details := &response_models.PlaceDetails{
		PlaceID:      decoded.ID,
		Name:         decoded.DisplayName.Text,
		Address:      formatJapaneseAddress(decoded.AddressComponents, decoded.FormattedAddress),
		SessionToken: uuid.New().String(),
	}
	if details.PlaceID == "" {
		details.PlaceID = placeID
	}
	if decoded.Location != nil {
		lat, lng := decoded.Location.Latitude, decoded.Location.Longitude
		details.Lat, details.Lng = &lat, &lng
	}
	return details, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode turns a hand-typed address into coordinates for the map pin.
// Best-effort only: any failure returns nil coordinates and the caller
// proceeds without them.
func (p *PlacesService) Geocode(ctx context.Context, address string) (*float64, *float64) {
	if p.apiKey == "" || strings.TrimSpace(address) == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", p.apiKey)
	params.Set("language", "ja")
	params.Set("region", "jp")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("Geocoding request failed: %v", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, nil
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return nil, nil
	}

	lat := decoded.Results[0].Geometry.Location.Lat
	lng := decoded.Results[0].Geometry.Location.Lng
	return &lat, &lng
}

// formatJapaneseAddress rebuilds a compact Japanese address from structured
// components: prefecture through sublocality run together, block numbers
// hyphen-joined, building names space-separated. Falls back to the provider's
// flat formatted address when no components came back.
func formatJapaneseAddress(components []addressComponent, fallback string) string {
	if len(components) == 0 {
		return fallback
	}

	get := func(wanted string) string {
		for _, c := range components {
			for _, t := range c.Types {
				if t == wanted {
					return c.LongText
				}
			}
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(get("administrative_area_level_1"))
	b.WriteString(get("locality"))
	b.WriteString(get("sublocality_level_1"))
	b.WriteString(get("sublocality_level_2"))

	blocks := make([]string, 0, 4)
	for _, t := range []string{"sublocality_level_3", "sublocality_level_4", "sublocality_level_5", "street_number"} {
		if v := get(t); v != "" {
			blocks = append(blocks, v)
		}
	}
	b.WriteString(strings.Join(blocks, "-"))

	address := b.String()
	if route := get("route"); route != "" && !strings.Contains(address, route) {
		address += route
	}
	if premise := get("premise"); premise != "" {
		address += " " + premise
	}
	if subpremise := get("subpremise"); subpremise != "" {
		address += " " + subpremise
	}

	if address == "" {
		return fallback
	}
	return address
}

package response_models

type Prediction struct {
	PlaceID       string `json:"placeId"`
	PrimaryText   string `json:"primaryText"`
	SecondaryText string `json:"secondaryText"`
}

// PlaceDetails mirrors what the selection form needs. SessionToken is a fresh
// opaque value: a successful details call ends the provider billing session,
// so the client must start its next search with a new token.
type PlaceDetails struct {
	PlaceID      string   `json:"placeId"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	SessionToken string   `json:"sessionToken"`
}

package response_models

type RegisterShopResponse struct {
	ShopID string `json:"shop_id"`
}

type ShopPhotoResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type ShopDetailResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Address   *string             `json:"address"`
	Lat       *float64            `json:"lat"`
	Lng       *float64            `json:"lng"`
	Status    string              `json:"status"`
	Memo      *string             `json:"memo"`
	VisitedAt string              `json:"visited_at,omitempty"`
	Photos    []ShopPhotoResponse `json:"photos"`
	Tags      []TagResponse       `json:"tags"`
}

type ShopListItem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address *string  `json:"address"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// MapShop is a pin on the map page; only shops with coordinates qualify.
type MapShop struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

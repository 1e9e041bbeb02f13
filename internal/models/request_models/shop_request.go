package request_models

// PhotoUpload carries one uploaded file's bytes from the controller to the
// service. Zero-length uploads are skipped.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// RegisterShopRequest is the parsed registration form. PlaceID is empty for
// manual entries; Lat/Lng come from the place details the client selected.
type RegisterShopRequest struct {
	Name    string
	Memo    *string
	PlaceID string
	Address *string
	Lat     *float64
	Lng     *float64
	Tags    []string
	Photos  []PhotoUpload
}

type UpdateShopRequest struct {
	Name   string   `json:"name"`
	Memo   *string  `json:"memo"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

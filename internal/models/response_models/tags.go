package response_models

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

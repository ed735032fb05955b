package response

type Availability struct {
	Available bool `json:"available"`
}

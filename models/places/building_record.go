package places

// BuildingRecord is a single DPA address record from the OS Places API.
// ClassCode is not part of the upstream payload; it holds the normalized
// classification code once the record has been classified.
type BuildingRecord struct {
	UPRN               string  `json:"UPRN"`
	Address            string  `json:"ADDRESS,omitempty"`
	ClassificationCode string  `json:"CLASSIFICATION_CODE"`
	X                  float64 `json:"X_COORDINATE"`
	Y                  float64 `json:"Y_COORDINATE"`

	ClassCode string `json:"-"`
}

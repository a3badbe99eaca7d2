package dimensions

// DimensionsResponse is returned by the per-UPRN dimensions endpoint.
type DimensionsResponse struct {
	Results []DimensionRecord `json:"results"`
}

// First returns the first record, or a zero placeholder when there is none.
func (r *DimensionsResponse) First() DimensionRecord {
	if r == nil || len(r.Results) == 0 {
		return DimensionRecord{}
	}
	return r.Results[0]
}

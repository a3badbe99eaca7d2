package places

// Header is the paging metadata of a Places API response.
type Header struct {
	URI          string `json:"uri,omitempty"`
	Offset       int    `json:"offset"`
	TotalResults int    `json:"totalresults"`
	MaxResults   int    `json:"maxresults"`
}

// Result wraps one record; the API nests records under their dataset name.
type Result struct {
	DPA BuildingRecord `json:"DPA"`
}

// PlacesResponse is one page returned by the radius or bbox endpoints.
type PlacesResponse struct {
	Header  Header   `json:"header"`
	Results []Result `json:"results"`
}

// Records unwraps the page into plain building records.
func (p *PlacesResponse) Records() []BuildingRecord {
	out := make([]BuildingRecord, 0, len(p.Results))
	for _, r := range p.Results {
		out = append(out, r.DPA)
	}
	return out
}

package util

import (
	"encoding/json"
	"fmt"
	"os"

	"buildings-server/models/dimensions"
	"buildings-server/models/places"
)

// ReadPlacesResponseFromJSON loads a PlacesResponse from JSON on disk.
func ReadPlacesResponseFromJSON(filePath string) (*places.PlacesResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp places.PlacesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PlacesResponse: %w", err)
	}
	return &resp, nil
}

// ReadDimensionsResponseFromJSON loads a DimensionsResponse from JSON on disk.
func ReadDimensionsResponseFromJSON(filePath string) (*dimensions.DimensionsResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp dimensions.DimensionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DimensionsResponse: %w", err)
	}
	return &resp, nil
}

package services

import (
	"errors"
)

var (
	// ErrInvalidQuery marks missing, malformed or unsupported query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUpstream marks a failed page request to the OS data provider.
	ErrUpstream = errors.New("upstream request failed")
	// ErrNoDrawRequested is returned when draw=1 was not passed.
	ErrNoDrawRequested = errors.New("draw not requested")
	// ErrNoCachedArtifact is returned on a stash miss while live generation is off.
	ErrNoCachedArtifact = errors.New("no cached artifact")
	// ErrLiveGenerationDisabled is returned by operations that always hit the OS APIs.
	ErrLiveGenerationDisabled = errors.New("live generation disabled")
)

const (
	NoDrawRequestedMessage  = "Please put draw=1 in query string if you wish to generate glTF"
	NoCachedArtifactMessage = "No stash and we are not going to bother os api server today so no data for you, sorry."
	InvalidMethodMessage    = "method must be either radius, bbox or osgrid"
)

// Message returns the text shown to API callers for err.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNoDrawRequested):
		return NoDrawRequestedMessage
	case errors.Is(err, ErrNoCachedArtifact):
		return NoCachedArtifactMessage
	}
	return err.Error()
}

package models

import "sort"

type TideKind string

const (
	TideKindHigh TideKind = "HIGH"
	TideKindLow  TideKind = "LOW"
)

// TideMotion describes the direction of the tide at an instant.
type TideMotion string

const (
	TideRising  TideMotion = "RISING"
	TideFalling TideMotion = "FALLING"
	TideUnknown TideMotion = "UNKNOWN"
)

// TideSource identifies which provider produced a dataset.
type TideSource string

const (
	SourceLocalFree     TideSource = "local-free-provider"
	SourceGlobalMetered TideSource = "global-metered-provider"
)

// TideExtreme is a single high or low tide event.
type TideExtreme struct {
	Kind      TideKind `json:"kind"`
	Timestamp int64    `json:"timestamp"` // unix seconds UTC
	Height    float64  `json:"height"`    // meters
}

// TideDataset is a normalized set of tide extremes from one provider fetch.
type TideDataset struct {
	Extremes    []TideExtreme `json:"extremes"`
	Source      TideSource    `json:"source"`
	StationID   string        `json:"stationId,omitempty"`
	StationName string        `json:"stationName,omitempty"`
	// Stale marks a dataset served from the long-TTL cache after all
	// providers failed.
	Stale bool `json:"stale,omitempty"`
}

// SortedExtremes returns the extremes in ascending timestamp order.
// Providers are expected to return sorted data but consumers sort
// defensively.
func (d TideDataset) SortedExtremes() []TideExtreme {
	extremes := make([]TideExtreme, len(d.Extremes))
	copy(extremes, d.Extremes)
	sort.Slice(extremes, func(i, j int) bool {
		return extremes[i].Timestamp < extremes[j].Timestamp
	})
	return extremes
}

// TideState is the interpolated tide condition at a specific instant.
type TideState struct {
	Motion   TideMotion `json:"motion"`
	Progress float64    `json:"progress"` // 0-100 through the current half-cycle
	Height   float64    `json:"height"`   // meters
}

// CurvePoint is a single sample on an interpolated tide curve.
type CurvePoint struct {
	Timestamp int64   `json:"timestamp"`
	Height    float64 `json:"height"`
}

package domain

import "net/url"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// A hospital as returned by the search endpoint. Rating and Location are
// optional; the endpoint's ordering is authoritative.
type Hospital struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Rating   *float64 `json:"rating,omitempty"`
	Location *LatLng  `json:"location,omitempty"`
}

// NearestHospital returns the first entry of the server-ranked list.
// No client-side distance computation is performed.
func NearestHospital(hospitals []Hospital) (Hospital, bool) {
	if len(hospitals) == 0 {
		return Hospital{}, false
	}
	return hospitals[0], true
}

// Plottable keeps only hospitals that carry a location, preserving order.
func Plottable(hospitals []Hospital) []Hospital {
	out := make([]Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if h.Location == nil {
			continue
		}
		out = append(out, h)
	}
	return out
}

// SearchURL builds the web lookup used for "call hospital".
func (h Hospital) SearchURL() string {
	q := url.Values{}
	q.Set("q", h.Name+" hospital near me")
	return "https://www.google.com/search?" + q.Encode()
}

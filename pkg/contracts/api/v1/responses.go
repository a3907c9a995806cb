// Package v1 holds the JSON bodies of the /api/data endpoints that are not
// plain domain or service types.
package v1

// OptionsResponse is the body of GET /api/data/options
type OptionsResponse struct {
	Options []string `json:"options"`
	Default string   `json:"default"`
}

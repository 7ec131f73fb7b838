// Package entities contains domain entities used across the application.
package entities

// Pokemon is a single catalog record served by the remote data provider.
// Records never change once fetched.
type Pokemon struct {
	ID         int    `json:"id"`         // catalog identifier
	Name       string `json:"name"`       // canonical name, the answer to guess
	ImageURL   string `json:"imageUrl"`   // dream world sprite (SVG), empty when the provider has none
	ArtworkURL string `json:"artworkUrl"` // official artwork (PNG), used where SVG cannot be shown
}

// DisplayImage returns the best raster-friendly image of the record.
func (p Pokemon) DisplayImage() string {
	if p.ArtworkURL != "" {
		return p.ArtworkURL
	}
	return p.ImageURL
}

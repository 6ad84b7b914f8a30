package places

import (
	"context"
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// ExportGPX renders the places of a category as GPX 1.1 waypoints.
func (s *Service) ExportGPX(ctx context.Context, category models.Category) ([]byte, error) {
	places, err := s.Places(ctx, category)
	if err != nil {
		return nil, err
	}
	return WaypointsGPX(s.catalog.Area.Name, places)
}

func WaypointsGPX(name string, places []models.Place) ([]byte, error) {
	doc := &gpx.GPX{
		Version: "1.1",
		Creator: "juanito",
		Name:    name,
	}
	for _, p := range places {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point:       gpx.Point{Latitude: p.Lat, Longitude: p.Lng},
			Name:        p.Name,
			Description: p.Description,
			Type:        string(p.Category),
		})
	}
	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gpx: %w", err)
	}
	return out, nil
}

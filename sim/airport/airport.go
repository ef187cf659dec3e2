// Package airport holds the static airport catalog the simulator draws its
// disrupted airports from, and the proximity-based delay spread computed over
// that catalog.
//
// This package has no dependency on sim/; the driver passes codes in and reads
// intensities back out.
package airport

import (
	"fmt"
	"strings"

	geo "github.com/paulmach/go.geo"
)

// HubStatus classifies an airport by its role in the network.
type HubStatus string

const (
	HubMajor    HubStatus = "major"
	HubRegional HubStatus = "regional"
	HubSmall    HubStatus = "small"
)

// Airport is a single node of the static network.
type Airport struct {
	Code          string    `yaml:"code" json:"code"`
	Name          string    `yaml:"name" json:"name"`
	City          string    `yaml:"city" json:"city"`
	Lat           float64   `yaml:"lat" json:"lat"`
	Lng           float64   `yaml:"lng" json:"lng"`
	Hub           HubStatus `yaml:"hub" json:"hub"`
	TrafficVolume int       `yaml:"traffic_volume" json:"traffic_volume"`
	AvgDelay      int       `yaml:"avg_delay" json:"avg_delay"` // minutes
}

// point places the airport on a flat lng/lat plane (x = lng, y = lat).
func (a Airport) point() *geo.Point {
	return geo.NewPoint(a.Lng, a.Lat)
}

// NormalizeCode upper-cases and trims an airport code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Catalog is an immutable, ordered set of airports indexed by code.
type Catalog struct {
	airports []Airport
	byCode   map[string]int
}

// NewCatalog builds a catalog from list, preserving its order.
// Codes are normalized; empty or duplicate codes are rejected.
func NewCatalog(list []Airport) (*Catalog, error) {
	c := &Catalog{
		airports: make([]Airport, 0, len(list)),
		byCode:   make(map[string]int, len(list)),
	}
	for i, a := range list {
		a.Code = NormalizeCode(a.Code)
		if a.Code == "" {
			return nil, fmt.Errorf("airport[%d]: empty code", i)
		}
		if _, dup := c.byCode[a.Code]; dup {
			return nil, fmt.Errorf("airport[%d]: duplicate code %q", i, a.Code)
		}
		c.byCode[a.Code] = len(c.airports)
		c.airports = append(c.airports, a)
	}
	return c, nil
}

// Lookup returns the airport with the given code, if present.
func (c *Catalog) Lookup(code string) (Airport, bool) {
	if c == nil {
		return Airport{}, false
	}
	idx, ok := c.byCode[NormalizeCode(code)]
	if !ok {
		return Airport{}, false
	}
	return c.airports[idx], true
}

// Contains reports whether code is in the catalog.
func (c *Catalog) Contains(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Airports returns a copy of the catalog in its original order.
func (c *Catalog) Airports() []Airport {
	if c == nil {
		return nil
	}
	out := make([]Airport, len(c.airports))
	copy(out, c.airports)
	return out
}

// Len returns the number of airports.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.airports)
}

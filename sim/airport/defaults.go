package airport

// defaultAirports is the built-in twenty-airport US network.
var defaultAirports = []Airport{
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta", City: "Atlanta", Lat: 33.6407, Lng: -84.4277, Hub: HubMajor, TrafficVolume: 95000, AvgDelay: 15},
	{Code: "ORD", Name: "O'Hare International", City: "Chicago", Lat: 41.9742, Lng: -87.9073, Hub: HubMajor, TrafficVolume: 83000, AvgDelay: 28},
	{Code: "LAX", Name: "Los Angeles International", City: "Los Angeles", Lat: 33.9416, Lng: -118.4085, Hub: HubMajor, TrafficVolume: 88000, AvgDelay: 18},
	{Code: "DFW", Name: "Dallas/Fort Worth", City: "Dallas", Lat: 32.8998, Lng: -97.0403, Hub: HubMajor, TrafficVolume: 75000, AvgDelay: 12},
	{Code: "DEN", Name: "Denver International", City: "Denver", Lat: 39.8561, Lng: -104.6737, Hub: HubMajor, TrafficVolume: 69000, AvgDelay: 32},
	{Code: "JFK", Name: "John F. Kennedy", City: "New York", Lat: 40.6413, Lng: -73.7781, Hub: HubMajor, TrafficVolume: 62000, AvgDelay: 45},
	{Code: "SFO", Name: "San Francisco International", City: "San Francisco", Lat: 37.6213, Lng: -122.3790, Hub: HubMajor, TrafficVolume: 58000, AvgDelay: 25},
	{Code: "LAS", Name: "Harry Reid International", City: "Las Vegas", Lat: 36.0840, Lng: -115.1537, Hub: HubMajor, TrafficVolume: 52000, AvgDelay: 14},
	{Code: "SEA", Name: "Seattle-Tacoma", City: "Seattle", Lat: 47.4502, Lng: -122.3088, Hub: HubMajor, TrafficVolume: 50000, AvgDelay: 10},
	{Code: "MCO", Name: "Orlando International", City: "Orlando", Lat: 28.4312, Lng: -81.3081, Hub: HubMajor, TrafficVolume: 48000, AvgDelay: 16},
	{Code: "MIA", Name: "Miami International", City: "Miami", Lat: 25.7959, Lng: -80.2870, Hub: HubMajor, TrafficVolume: 46000, AvgDelay: 19},
	{Code: "PHX", Name: "Phoenix Sky Harbor", City: "Phoenix", Lat: 33.4352, Lng: -112.0101, Hub: HubMajor, TrafficVolume: 44000, AvgDelay: 11},
	{Code: "BOS", Name: "Boston Logan", City: "Boston", Lat: 42.3656, Lng: -71.0096, Hub: HubRegional, TrafficVolume: 42000, AvgDelay: 30},
	{Code: "EWR", Name: "Newark Liberty", City: "Newark", Lat: 40.6895, Lng: -74.1745, Hub: HubRegional, TrafficVolume: 40000, AvgDelay: 38},
	{Code: "MSP", Name: "Minneapolis-St. Paul", City: "Minneapolis", Lat: 44.8848, Lng: -93.2223, Hub: HubRegional, TrafficVolume: 38000, AvgDelay: 17},
	{Code: "DTW", Name: "Detroit Metro Wayne", City: "Detroit", Lat: 42.2162, Lng: -83.3554, Hub: HubRegional, TrafficVolume: 36000, AvgDelay: 22},
	{Code: "PHL", Name: "Philadelphia International", City: "Philadelphia", Lat: 39.8729, Lng: -75.2437, Hub: HubRegional, TrafficVolume: 34000, AvgDelay: 20},
	{Code: "LGA", Name: "LaGuardia", City: "New York", Lat: 40.7769, Lng: -73.8740, Hub: HubRegional, TrafficVolume: 32000, AvgDelay: 42},
	{Code: "IAH", Name: "George Bush Houston", City: "Houston", Lat: 29.9902, Lng: -95.3368, Hub: HubRegional, TrafficVolume: 30000, AvgDelay: 13},
	{Code: "CLT", Name: "Charlotte Douglas", City: "Charlotte", Lat: 35.2144, Lng: -80.9473, Hub: HubRegional, TrafficVolume: 28000, AvgDelay: 18},
}

// DefaultAirports returns a copy of the built-in airport list.
func DefaultAirports() []Airport {
	out := make([]Airport, len(defaultAirports))
	copy(out, defaultAirports)
	return out
}

// DefaultCatalog returns a catalog over DefaultAirports.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultAirports)
	if err != nil {
		// defaultAirports has unique, non-empty codes.
		panic(err)
	}
	return c
}

package carbon

import "math"

// Only the fuel burnt is counted, not vehicle manufacturing.
const (
	// https://www.eea.europa.eu/data-and-maps/indicators/average-co2-emissions-from-motor-vehicles-1/assessment
	RoadKgCO2PerKm = 0.120
	// https://www.eea.europa.eu/publications/ENVISSUENo12/page029.html
	CarOccupancy = 1.5
	// https://ourworldindata.org/travel-carbon-footprint
	AirKgCO2PerKm = 0.156
	// Electrified trains, western europe.
	RailKgCO2PerKm = 0.006
)

// CO2Kg returns the kg CO2-eq for distanceKm travelled with mode, truncated
// towards zero.
func CO2Kg(distanceKm int, mode Mode) int {
	if distanceKm <= 0 {
		return 0
	}

	var co2 float64
	km := float64(distanceKm)
	switch mode {
	case Road:
		co2 = (km * RoadKgCO2PerKm) / CarOccupancy
	case Air:
		co2 = km * AirKgCO2PerKm
	case Rail:
		co2 = km * RailKgCO2PerKm
	}
	return int(math.Floor(co2))
}

// Package carbon maps location-history activity types to transportation
// modes and converts travelled distances into kg of CO2-equivalent.
package carbon

// Mode is the transportation category an activity is billed under.
type Mode string

const (
	None Mode = ""
	Air  Mode = "AIR"
	Road Mode = "ROAD"
	Rail Mode = "RAIL"
)

// Modes lists the billable modes in report column order.
var Modes = []Mode{Air, Road, Rail}

func (m Mode) String() string {
	if m == None {
		return "NONE"
	}
	return string(m)
}

var activityModes = map[string]Mode{
	"FLYING":               Air,
	"IN_TAXI":              Road,
	"IN_PASSENGER_VEHICLE": Road,
	"IN_VEHICLE":           Road,
	"IN_TRAIN":             Rail,
	"IN_TRAM":              Rail,
}

// Classify returns the mode for a raw activity type such as "IN_TRAIN".
// Anything not listed (STILL, WALKING, CYCLING, ...) is carbon neutral or
// unknown and yields None.
func Classify(activityType string) Mode {
	return activityModes[activityType]
}

package geocoding

import "time"

// DefaultInterval keeps requests under the public Nominatim limit of one per second.
const DefaultInterval = 1100 * time.Millisecond

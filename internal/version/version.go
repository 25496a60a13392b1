// Package version provides build and version information.
package version

import "fmt"

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Offline bright-star catalog, catalog cache, Prometheus metrics
// 0.2.0 - SIMBAD TAP lookups, WeatherAPI and Google time zone resolution
// 0.1.0 - Initial release: calendar normalizer, alt/az to J2000, radius sweep

// UserAgent is sent with every outbound HTTP request.
var UserAgent = fmt.Sprintf("ls-starfinder/%s", Version)

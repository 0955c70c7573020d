package youtube

import "regexp"

// videoIDRE matches an 11-character video id following either a v= query
// parameter or a path separator. Host is deliberately not checked; short
// links and embeds qualify too.
var videoIDRE = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID returns the first video id found in rawURL. The second
// return value is false when no candidate exists; that is not an error.
func ExtractVideoID(rawURL string) (string, bool) {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

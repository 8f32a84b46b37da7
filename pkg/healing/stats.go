package healing

import (
	"os"
	"strings"
)

// Stats summarizes the healing event log.
type Stats struct {
	TotalEvents int
	// ByOriginal counts events per originally-declared primary locator.
	ByOriginal map[string]int
	// ByWinning counts events per winning locator.
	ByWinning map[string]int
}

// ReadStats derives statistics from the event log. A missing log yields
// zero stats. Lines whose locator text itself contains the field delimiter
// (an XPath with a comma, say) contribute to the total only.
func ReadStats(path string) (*Stats, error) {
	stats := &Stats{
		ByOriginal: make(map[string]int),
		ByWinning:  make(map[string]int),
	}

	data, err := os.ReadFile(path) //#nosec G304 -- event log under the configured dir
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stats.TotalEvents++

		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			continue
		}
		stats.ByOriginal[fields[1]]++
		stats.ByWinning[fields[2]]++
	}

	return stats, nil
}

package cli

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/appium-healer/pkg/healing"
)

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "Summarize the healing event log",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		stats, err := healing.ReadStats(cfg.EventsFile)
		if err != nil {
			return fmt.Errorf("failed to read event log: %w", err)
		}

		fmt.Printf("Total healing events: %d\n", stats.TotalEvents)
		if stats.TotalEvents == 0 {
			return nil
		}

		fmt.Println("\nBy original locator:")
		printBreakdown(stats.ByOriginal)
		fmt.Println("\nBy winning locator:")
		printBreakdown(stats.ByWinning)
		return nil
	},
}

func printBreakdown(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// Highest count first, locator text as tiebreaker.
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		fmt.Printf("  %6d  %s\n", counts[k], k)
	}
}

package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/appium-healer/pkg/repository"
)

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "Show the persisted healing history",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		records, err := repository.ReadHistoryFile(cfg.HistoryFile)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No healing history recorded yet.")
				return nil
			}
			return fmt.Errorf("failed to read history: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No healing history recorded yet.")
			return nil
		}

		ids := make([]string, 0, len(records))
		for id := range records {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("Healing history (%d elements):\n", len(records))
		for _, id := range ids {
			fmt.Printf("  %s -> strategy index %d\n", id, records[id])
		}
		return nil
	},
}

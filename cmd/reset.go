package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dohyun/jumble/internal/config"
	"github.com/dohyun/jumble/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all learner data (scores, attempts, cached sentences)",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete data without --yes")
		}

		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		driver, dsn, err := resolveDSN(cmd, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("resolve database: %w", err)
		}

		st, err := store.Open(driver, dsn)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Println("All learner data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dohyun/jumble/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "jumble",
	Short: "Sentence-reconstruction English practice backend",
	Long:  "Jumble — backend for a word-scramble English learning game: LLM-generated sentences, daily attempt quotas, score ledger and rankings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides JUMBLE_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDSN returns the database driver and DSN, honoring the --db
// flag (highest priority), then the configured driver/DSN, then the
// default XDG sqlite path.
func resolveDSN(cmd *cobra.Command, driver, dsn string) (string, string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return store.DriverSQLite, p, store.EnsureDir(p)
	}
	if dsn != "" {
		return driver, dsn, nil
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return "", "", err
	}
	return store.DriverSQLite, p, nil
}

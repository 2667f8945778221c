package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dohyun/jumble/internal/config"
	"github.com/dohyun/jumble/internal/llm"
	"github.com/dohyun/jumble/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM configuration and call history",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		provider, err := llm.NewProvider(cmd.Context(), cfg, nil)
		if err != nil {
			return fmt.Errorf("init provider: %w", err)
		}

		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Model:    %s\n", provider.ModelID())
		fmt.Printf("Timeout:  %s\n", cfg.Timeout)
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rows, err := store.NewLLMCallRepo(st.DB()).ListRecent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-16s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))

		for _, row := range rows {
			if purpose != "" && row.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !row.Success {
				ok = "✗"
			}
			model := row.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-19s  %-16s  %-28s  %-6d  %-6d  %-7d  %s\n",
				row.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				row.Purpose,
				model,
				row.InputTokens,
				row.OutputTokens,
				row.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := store.NewLLMCallRepo(st.DB()).UsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-18s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))

		var totalCalls, totalIn, totalOut int
		for _, row := range stats {
			total := row.InputTokens + row.OutputTokens
			fmt.Printf("%-18s  %6d  %10d  %10d  %10d  %8d\n",
				row.Purpose, row.Calls, row.InputTokens, row.OutputTokens, total, row.AvgLatencyMs)
			totalCalls += row.Calls
			totalIn += row.InputTokens
			totalOut += row.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-18s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)
		return nil
	},
}

// openStore opens the configured database for read-side commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	driver, dsn, err := resolveDSN(cmd, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. sentence-gen, answer-analysis)")

	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

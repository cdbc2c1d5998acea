package cmd

import (
	"fmt"
	"os"

	"sitemap-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sitemap-manager",
	Short: "Sitemap Manager",
	Long: `Sitemap Manager keeps sitemap.xml files in sync with the website sources they describe.
It regenerates sitemaps from a scan of the source tree, applies file events incrementally,
and detects and repairs drift.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// yesConfirm answers every prompt: overwrites and destructive actions are
// accepted, and an ambiguous sitemap selection fails instead of asking.
var yesConfirm bool

func init() {
	RootCmd.PersistentFlags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm prompts (non-interactive)")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the debug config gives readable ISO8601 timestamps on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version 构建时通过 ldflags 注入
	Version = "dev"
	Commit  = "unknown"
)

// @title           Channel Engage API
// @version         1.0
// @description     频道互动引擎：发布帖子、提交互动事件、评论管理
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "engagebot",
	Short: "Channel engagement bot: reactions, collections, comments and auto-pin",
	Long: `engagebot keeps the engagement cards of a Telegram broadcast channel in sync
with its ledger of reactions, collections and comments, notifies authors and
pins items once they cross the like threshold.

Configuration is read from config.yaml, .env and ENGAGE_* environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("engagebot version %s\nCommit: %s\n", Version, Commit))
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

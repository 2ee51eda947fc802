package main

import (
	"fmt"
	"os"

	"github.com/fabulark/fabula/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fabula",
	Short: "Fabula is a branching story editor with LLM-backed text generation",
	Long: `Fabula manages collections of branching stories as node graphs and
fills their scenes and choices with generated text, one request at a time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory holding the story collection (loam store)")
	rootCmd.PersistentFlags().String("store", "loam", "Story store backend: loam, redis or memory")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (store=redis)")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password (store=redis)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number (store=redis)")
	rootCmd.PersistentFlags().String("bridge", "", "Base URL of the LLM bridge (enables generation)")
	rootCmd.PersistentFlags().String("catalog", "", "Directory with catalog files (elements.json, details.yaml, taxonomies.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// editorOptions translates the persistent flags into factory options.
func editorOptions(cmd *cobra.Command) cli.EditorOptions {
	dir, _ := cmd.Flags().GetString("dir")
	store, _ := cmd.Flags().GetString("store")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	redisPassword, _ := cmd.Flags().GetString("redis-password")
	redisDB, _ := cmd.Flags().GetInt("redis-db")
	bridge, _ := cmd.Flags().GetString("bridge")
	catalogDir, _ := cmd.Flags().GetString("catalog")
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.EditorOptions{
		Store:         store,
		Dir:           dir,
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,
		BridgeURL:     bridge,
		CatalogDir:    catalogDir,
		Debug:         debug,
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rasoihub/tiffinbox/internal/models"
	"github.com/rasoihub/tiffinbox/internal/simulator"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tiffinbox",
	Short: "Order configuration engine for meal-subscription platforms",
	Long:  `tiffinbox classifies subscription menus, expands delivery dates, resolves per-meal addresses and materializes order totals, and can simulate booking sessions end to end against an in-memory or postgres-backed catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		sim := simulator.NewSimulator(cfg)
		if err := sim.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tiffinbox.yaml)")

	rootCmd.Flags().Int("seed", 42, "Random seed for simulation")
	rootCmd.Flags().String("start-date", time.Now().Format(time.RFC3339), "Booking date the simulated sessions run on")
	rootCmd.Flags().Int("initial-customers", 50, "Number of fake customers")
	rootCmd.Flags().Int("initial-menus", 40, "Number of fake menu plans")
	rootCmd.Flags().Int("session-count", 100, "Number of booking sessions to simulate")
	rootCmd.Flags().String("database-url", "", "Postgres URL for the catalog collaborators (in-memory if empty)")
	rootCmd.Flags().Bool("seed-database", false, "Seed the database with the generated catalog before running")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-path", "", "Output directory for order events (console if empty)")
	rootCmd.Flags().String("output-format", "json", "Output format: json or parquet")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tiffinbox")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

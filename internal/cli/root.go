// Package cli implements the grappleflow CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/coach"
	"github.com/grappleflow/grappleflow/internal/config"
	"github.com/grappleflow/grappleflow/internal/store"
)

var (
	dataDir    string
	configPath string
	formatFlag string
	verbose    bool

	log = logrus.New()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "grappleflow",
	Short: "BJJ training journal with an AI coach",
	Long:  "A single-user journal for BJJ training sessions, a scientific lab notebook for technical problems, and a chat with Coach G. All state lives in local JSON blobs.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Data directory (default: $GRAPPLEFLOW_DATA_DIR or ~/.grappleflow)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/grappleflow/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func getDataDir(cfg *config.Config) string {
	if dataDir != "" {
		return dataDir
	}
	return cfg.Data.Dir
}

func openStore() (*store.Store, *config.Config) {
	cfg := loadConfig()
	s, err := store.Open(getDataDir(cfg), log)
	if err != nil {
		exitErr("open store", err)
	}
	return s, cfg
}

func newCoach(cfg *config.Config) *coach.Coach {
	provider, err := coach.NewProvider(coach.ProviderConfig{
		Provider: cfg.Coach.Provider,
		Model:    cfg.Coach.Model,
		BaseURL:  cfg.Coach.BaseURL,
		APIKey:   cfg.Coach.APIKey,
		Timeout:  cfg.Coach.Timeout,
	})
	if err != nil {
		exitErr("coach", err)
	}
	return coach.New(provider, log)
}

func jsonOut() bool { return formatFlag == "json" }

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

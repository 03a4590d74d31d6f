package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vectorgov/vectorgov-go/internal/alert"
	"github.com/vectorgov/vectorgov-go/internal/client"
	"github.com/vectorgov/vectorgov-go/internal/config"
	"github.com/vectorgov/vectorgov-go/internal/models"
	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

// AppVersion contains the application version
const AppVersion = "1.0.0"

type app struct {
	config     *config.Config
	client     *client.Client
	dispatcher *alert.Dispatcher
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logCfg := cfg.Logging
	if err := utils.InitLogger(logCfg.Level, logCfg.Format, logCfg.Output, logCfg.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	dispatcher, err := alert.NewDispatcher(cfg.Alerting.AlertConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create alert dispatcher: %w", err)
	}

	apiClient, err := client.NewClient(client.Config{
		BaseURL:        cfg.API.BaseURL,
		APIKey:         cfg.API.APIKey,
		RequestTimeout: cfg.API.RequestTimeout,
		MaxIdleConns:   cfg.API.MaxIdleConns,
	}, dispatcher)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &app{config: cfg, client: apiClient, dispatcher: dispatcher}, nil
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "vectorgov",
		Short:   "VectorGov semantic search client",
		Version: AppVersion,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a semantic search query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			topK, _ := cmd.Flags().GetInt("top-k")

			resp, err := a.client.Search(cmd.Context(), models.SearchRequest{
				Query: strings.Join(args, " "),
				TopK:  topK,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%d result(s) in %.1fms\n\n", resp.TotalResults, resp.QueryTimeMs)
			for i, r := range resp.Results {
				fmt.Printf("%d. %s (score %.4f)\n   %s\n\n", i+1, r.Title, r.Score, r.Content)
			}
			return nil
		},
	}
	searchCmd.Flags().Int("top-k", 10, "number of results to return")

	askCmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question grounded on the indexed documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}

			resp, err := a.client.Ask(cmd.Context(), models.AskRequest{
				Question: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			fmt.Println(resp.Answer)
			if len(resp.Citations) > 0 {
				fmt.Println("\nSources:")
				for _, c := range resp.Citations {
					fmt.Printf("  - %s (score %.4f)\n", c.Title, c.Score)
				}
			}
			return nil
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}

			status, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("status=%s version=%s documents=%d uptime=%s\n",
				status.Status, status.Version, status.DocumentCount,
				time.Duration(status.UptimeSeconds)*time.Second)
			return nil
		},
	}

	alertTestCmd := &cobra.Command{
		Use:   "alert-test",
		Short: "Send a test alert through the configured channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			severity, _ := cmd.Flags().GetString("severity")

			result := a.dispatcher.Send(context.Background(), alert.SendRequest{
				Title:          "Test Alert",
				Message:        "Dispatcher connectivity test",
				Severity:       alert.Severity(severity),
				Source:         "cli",
				Details:        map[string]interface{}{"invoked_at": time.Now().UTC().Format(time.RFC3339)},
				BypassCooldown: true,
			})

			if !result.Sent {
				return fmt.Errorf("alert was not delivered: %s", result.Error)
			}
			fmt.Printf("alert %s delivered via %v\n", result.AlertID, result.Channels)
			if result.Error != "" {
				fmt.Printf("partial failure: %s\n", result.Error)
			}
			return nil
		},
	}
	alertTestCmd.Flags().String("severity", "warning", "alert severity")

	rootCmd.AddCommand(searchCmd, askCmd, healthCmd, alertTestCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

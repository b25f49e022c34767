package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eneda8/nearby/internal/config"
	"github.com/eneda8/nearby/internal/fetch"
	"github.com/eneda8/nearby/internal/filter"
	"github.com/eneda8/nearby/internal/rules"
	"github.com/eneda8/nearby/internal/search"
	"github.com/eneda8/nearby/pkg/places"
	"github.com/eneda8/nearby/pkg/routes"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Nearby-place search service",
	Long:  "Resolves requested place types to a category, fans out to the place-search provider, deduplicates, geofilters and ranks the results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newSearchService wires the pipeline from configuration.
func newSearchService() (*search.Service, error) {
	if cfg.Places.APIKey == "" {
		return nil, eris.New("places API key not configured")
	}

	opts := []places.Option{places.WithRateLimit(cfg.Places.QPS)}
	if cfg.Places.BaseURL != "" {
		opts = append(opts, places.WithBaseURL(cfg.Places.BaseURL))
	}
	client := places.NewClient(cfg.Places.APIKey, opts...)

	r, err := rules.Load()
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(client, r, cfg.Search.FanoutConcurrency)
	engine := filter.New(r)
	return search.NewService(fetcher, engine, cfg.Search.MaxResults), nil
}

// newRoutesClient wires the route-matrix client, or returns nil when no key
// is configured.
func newRoutesClient() routes.Client {
	if cfg.Routes.APIKey == "" {
		return nil
	}
	opts := []routes.Option{routes.WithRateLimit(cfg.Routes.QPS)}
	if cfg.Routes.BaseURL != "" {
		opts = append(opts, routes.WithBaseURL(cfg.Routes.BaseURL))
	}
	return routes.NewClient(cfg.Routes.APIKey, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

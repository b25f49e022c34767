package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/eneda8/nearby/internal/search"
)

var (
	searchLat    float64
	searchLng    float64
	searchRadius float64
	searchTypes  string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a one-shot nearby search and print the JSON response",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newSearchService()
		if err != nil {
			return err
		}

		tokens := strings.Split(searchTypes, ",")
		for i := range tokens {
			tokens[i] = strings.TrimSpace(tokens[i])
		}

		resp, err := svc.Search(cmd.Context(), search.Request{
			Lat:           &searchLat,
			Lng:           &searchLng,
			RadiusMeters:  &searchRadius,
			IncludedTypes: tokens,
		})
		if err != nil {
			return eris.Wrap(err, "search")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "origin latitude")
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "origin longitude")
	searchCmd.Flags().Float64Var(&searchRadius, "radius", 1600, "search radius in meters")
	searchCmd.Flags().StringVar(&searchTypes, "types", "", "comma-separated place type tokens")
	searchCmd.MarkFlagRequired("lat")
	searchCmd.MarkFlagRequired("lng")
	searchCmd.MarkFlagRequired("types")
	rootCmd.AddCommand(searchCmd)
}

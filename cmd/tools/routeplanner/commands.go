package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/uberhub/innovation-hub/backend/internal/config"
	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	"github.com/uberhub/innovation-hub/backend/internal/model/route"
	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
	routeService "github.com/uberhub/innovation-hub/backend/internal/service/route"
)

type gatewayFactory func(ctx context.Context) (ai.Gateway, error)

// configuredGateway 从环境变量构建模型网关
func configuredGateway(ctx context.Context) (ai.Gateway, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return ai.NewGateway(ctx, cfg.AI)
}

type rootOptions struct {
	facilitiesFile string
	timeout        time.Duration
	newGateway     gatewayFactory
}

func (o *rootOptions) planner(ctx context.Context) (*routeService.Service, []facility.Facility, error) {
	catalog, err := facility.LoadFile(o.facilitiesFile)
	if err != nil {
		return nil, nil, err
	}
	gateway, err := o.newGateway(ctx)
	if err != nil {
		return nil, nil, err
	}
	return routeService.NewService(gateway), catalog.List(), nil
}

func (o *rootOptions) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd(newGateway gatewayFactory) *cobra.Command {
	opts := &rootOptions{newGateway: newGateway}

	root := &cobra.Command{
		Use:           "routeplanner",
		Short:         "Plan startup visiting routes with the language model",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.facilitiesFile, "facilities", "f", "", "facility catalog JSON file (built-in catalog when empty)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 90*time.Second, "model call timeout")

	root.AddCommand(newPlanCmd(opts), newPromptCmd(opts), newThematicCmd(opts))
	return root
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var (
		priority string
		sectors  []string
		phases   []string
		maxStops int
		startLat float64
		startLng float64
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a route from explicit criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			planner, items, err := opts.planner(ctx)
			if err != nil {
				return err
			}
			criteria := route.Criteria{
				Priority: route.Priority(priority),
				Sectors:  sectors,
				Phases:   phases,
				MaxStops: maxStops,
			}
			if cmd.Flags().Changed("start-lat") || cmd.Flags().Changed("start-lng") {
				criteria.Start = &facility.Coordinates{Lat: startLat, Lng: startLng}
			}

			it, err := planner.PlanRoute(ctx, items, criteria)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), it)
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", string(route.PriorityBalanced), "distance, sector, phase or balanced")
	cmd.Flags().StringSliceVar(&sectors, "sector", nil, "preferred sectors (repeatable)")
	cmd.Flags().StringSliceVar(&phases, "phase", nil, "preferred phases (repeatable)")
	cmd.Flags().IntVarP(&maxStops, "max-stops", "n", route.DefaultMaxStops, "maximum number of stops")
	cmd.Flags().Float64Var(&startLat, "start-lat", 0, "starting point latitude")
	cmd.Flags().Float64Var(&startLng, "start-lng", 0, "starting point longitude")
	return cmd
}

func newPromptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <text>",
		Short: "Plan a route from a free-text request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			planner, items, err := opts.planner(ctx)
			if err != nil {
				return err
			}
			it, err := planner.PlanRouteFromPrompt(ctx, args[0], items)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), it)
		},
	}
}

func newThematicCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "thematic <theme>",
		Short: "Suggest alternative routes around a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			planner, items, err := opts.planner(ctx)
			if err != nil {
				return err
			}
			routes, err := planner.SuggestThematicRoutes(ctx, args[0], items)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"routes": routes})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

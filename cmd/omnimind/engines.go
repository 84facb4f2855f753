package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/container"
	"github.com/pdiddy/omnimind/pkg/types"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List search engines and manage local engine containers",
}

var enginesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show each engine, whether it is enabled, and its base URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		active := make(map[types.EngineID]bool)
		for _, id := range newAggregator().Engines() {
			active[id] = true
		}

		rows := []struct {
			id types.EngineID
			ec types.EngineConfig
		}{
			{types.EngineSearXNG, appCfg.Search.SearXNG},
			{types.EngineWikipedia, appCfg.Search.Wikipedia},
			{types.EngineYaCy, appCfg.Search.YaCy},
			{types.EngineArxiv, appCfg.Search.Arxiv},
		}
		fmt.Printf("%-10s  %-9s  %s\n", "Engine", "Status", "URLs")
		for _, r := range rows {
			status := "disabled"
			switch {
			case active[r.id]:
				status = "active"
			case r.ec.Enabled:
				status = "no url"
			}
			fmt.Printf("%-10s  %-9s  %s\n", r.id, status, orNone(r.ec.URLs))
		}
		return nil
	},
}

var enginesUpCmd = &cobra.Command{
	Use:   "up <engine>",
	Short: "Start a local engine container (yacy)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, rt, err := engineRuntime(args[0])
		if err != nil {
			return err
		}
		if err := rt.ImageExists(spec.Image); err != nil {
			logger.Info("image not present locally, the runtime will pull it", zap.String("image", spec.Image))
		}
		if err := rt.Start(spec); err != nil {
			return err
		}
		fmt.Printf("%s is starting on %s (container %s via %s)\n", spec.Engine, spec.URL, spec.Name, rt.Name())
		fmt.Printf("Enable it with OMNIMIND_ENGINES_%s_URLS=%s\n", strings.ToUpper(string(spec.Engine)), spec.URL)
		return nil
	},
}

var enginesDownCmd = &cobra.Command{
	Use:   "down <engine>",
	Short: "Stop and remove a local engine container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, rt, err := engineRuntime(args[0])
		if err != nil {
			return err
		}
		if err := rt.Stop(spec.Name); err != nil {
			return err
		}
		fmt.Printf("%s stopped\n", spec.Engine)
		return nil
	},
}

func engineRuntime(name string) (container.Spec, container.Runtime, error) {
	spec, ok := container.Lookup(types.EngineID(name))
	if !ok {
		return container.Spec{}, nil, fmt.Errorf("engine %q has no local container", name)
	}
	rt, err := container.DetectRuntime()
	if err != nil {
		return container.Spec{}, nil, err
	}
	return spec, rt, nil
}

func init() {
	enginesCmd.AddCommand(enginesListCmd, enginesUpCmd, enginesDownCmd)
	rootCmd.AddCommand(enginesCmd)
}

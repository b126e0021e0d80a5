package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/mininotes/pkg/adapters/fs"
	"github.com/aretw0/mininotes/pkg/core"
	"github.com/aretw0/mininotes/pkg/metrics"
)

var statsDiagram bool

type componentReport struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

type statsReport struct {
	Components []componentReport       `json:"components"`
	Footprint  metrics.FootprintReport `json:"footprint"`
	Memory     metrics.MemoryReport    `json:"memory"`
	Ms         float64                 `json:"ms"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store state, disk footprint and memory usage",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		footprint, err := metrics.Measure(func() (metrics.FootprintReport, error) {
			return metrics.Footprint(context.Background(), store)
		})
		if err != nil {
			fatal("Failed to measure footprint", err)
		}

		report := statsReport{
			Footprint: footprint.Data,
			Memory:    metrics.MemoryUsage(),
			Ms:        footprint.Ms,
		}
		for _, c := range []introspection.Component{store.Service, store.Repository} {
			report.Components = append(report.Components, componentReport{
				Type:  c.ComponentType(),
				State: c.(introspection.Introspectable).State(),
			})
		}

		if statsDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "store"
			config.SecondaryLabel = "Store Topology"
			svcState, _ := store.Service.State().(core.ServiceState)
			repoState, _ := store.Repository.State().(fs.RepositoryState)
			fmt.Println(introspection.TreeDiagram(buildStoreTree(svcState, repoState, footprint.Data), config))
			return
		}

		printJSON(report)
	},
}

type storeNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []storeNode
}

// buildStoreTree lays out the store for a diagram. Status values must match
// the classes in introspection.DefaultStyles().
func buildStoreTree(svc core.ServiceState, repo fs.RepositoryState, fp metrics.FootprintReport) storeNode {
	watcherStatus := "suspended"
	if repo.WatcherActive {
		watcherStatus = "running"
	}

	sweep := "never"
	if repo.LastSweep != nil {
		sweep = repo.LastSweep.Format("15:04:05")
	}

	return storeNode{
		Name:   "Store",
		Status: "running",
		Metadata: map[string]string{
			"type": "container",
			"path": repo.Path,
		},
		Children: []storeNode{
			{
				Name:   "Service",
				Status: "running",
				Metadata: map[string]string{
					"type":       "process",
					"serialized": strconv.FormatBool(svc.SerializedUpdates),
					"locks":      strconv.Itoa(svc.ActiveLocks),
				},
			},
			{
				Name:   "Repository",
				Status: "running",
				Metadata: map[string]string{
					"type":      "process",
					"extension": repo.Extension,
					"bytes":     strconv.FormatInt(fp.DataBytes, 10),
					"sweep":     sweep,
				},
				Children: []storeNode{
					{
						Name:     "Watcher",
						Status:   watcherStatus,
						Metadata: map[string]string{"type": "goroutine"},
					},
				},
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}

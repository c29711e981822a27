package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bridges/internal/bridge"
	"bridges/internal/geo"
	"bridges/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full record of one bridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}
		b := bridge.Get(bridges, id)
		if b == nil {
			fmt.Printf("No bridge found with id %d\n", id)
			return nil
		}
		renderBridge(b, bridges, loadRegions())
		return nil
	},
}

var closestCmd = &cobra.Command{
	Use:   "closest <id>",
	Short: "Find the bridge nearest to another bridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}
		closest := bridge.Closest(bridges, id)
		if closest == bridge.NotFound {
			fmt.Printf("No closest bridge for id %d\n", id)
			return nil
		}
		b, other := bridge.Get(bridges, id), bridge.Get(bridges, closest)
		fmt.Printf("Closest to %d (%s): %d %s, %.3f km\n", b.ID, b.Name, other.ID, other.Name, bridge.DistanceBetween(b, other))
		return nil
	},
}

var highwayCmd = &cobra.Command{
	Use:   "highway <highway>",
	Short: "Total length of the bridges on a highway",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}
		total := bridge.TotalLengthOnHighway(bridges, args[0])
		fmt.Printf("Total bridge length on highway %s: %s m\n", args[0], strconv.FormatFloat(total, 'f', -1, 64))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "List bridges with any field containing keyword (case-insensitive)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}
		keyword := strings.Join(args, " ")
		ids := bridge.Containing(bridges, keyword)
		fmt.Printf("\nFound %d bridges matching %q\n", len(ids), keyword)
		listBridges(bridges, ids, bridgeLine)
		return nil
	},
}

var (
	nearLat    float64
	nearLon    float64
	nearRadius float64
)

var nearCmd = &cobra.Command{
	Use:   "near",
	Short: "List bridges within a radius of a point, nearest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if nearRadius < 0 {
			return fmt.Errorf("radius must not be negative")
		}
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}

		ids := bridge.InRadius(bridges, nearLat, nearLon, nearRadius)
		dist := make(map[int]float64, len(ids))
		for _, id := range ids {
			b := bridge.Get(bridges, id)
			dist[id] = geo.Distance(nearLat, nearLon, b.Latitude, b.Longitude)
		}
		sort.SliceStable(ids, func(i, j int) bool { return dist[ids[i]] < dist[ids[j]] })

		fmt.Printf("\nFound %d bridges within %.1f km of (%.6f, %.6f)\n", len(ids), nearRadius, nearLat, nearLon)
		listBridges(bridges, ids, func(b *types.Bridge) string {
			return fmt.Sprintf("%s | %7.3f km", bridgeLine(b), dist[b.ID])
		})
		return nil
	},
}

var belowBCI float64

var belowCmd = &cobra.Command{
	Use:   "below [ids...]",
	Short: "List bridges whose current BCI is at or below --bci",
	Long:  "Checks the given bridge ids, or every bridge when none are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			for _, b := range bridges {
				ids = append(ids, b.ID)
			}
		}
		found := bridge.ConditionBelow(bridges, ids, belowBCI)
		fmt.Printf("\nFound %d bridges with BCI at or below %.1f\n", len(found), belowBCI)
		listBridges(bridges, found, bridgeLine)
		return nil
	},
}

func init() {
	nearCmd.Flags().Float64Var(&nearLat, "lat", 0, "Latitude in degrees")
	nearCmd.Flags().Float64Var(&nearLon, "lon", 0, "Longitude in degrees")
	nearCmd.Flags().Float64Var(&nearRadius, "radius", 10, "Radius in km")
	nearCmd.MarkFlagRequired("lat")
	nearCmd.MarkFlagRequired("lon")

	belowCmd.Flags().Float64Var(&belowBCI, "bci", 60, "BCI threshold")

	rootCmd.AddCommand(showCmd, closestCmd, highwayCmd, searchCmd, nearCmd, belowCmd)
}

// listBridges prints one line per id and opens the interactive browser on
// a terminal.
func listBridges(bridges []*types.Bridge, ids []int, line func(*types.Bridge) string) {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, line(bridge.Get(bridges, id)))
	}
	regions := loadRegions()
	showList(ids, lines, func(id int) {
		renderBridge(bridge.Get(bridges, id), bridges, regions)
	})
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid bridge id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

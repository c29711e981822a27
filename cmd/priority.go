package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bridges/internal/bridge"
	"bridges/internal/types"
)

// ---------------- Inspection priority ----------------

var priorityLevel string

var priorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "List rated bridges by inspection priority, worst condition first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := bridge.Priority(strings.ToLower(priorityLevel))
		switch level {
		case "", bridge.PriorityHigh, bridge.PriorityMedium, bridge.PriorityLow:
		default:
			return fmt.Errorf("unknown priority %q (want high, medium or low)", priorityLevel)
		}

		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}

		ranked := rankByPriority(bridges, level)
		counts := map[bridge.Priority]int{}
		for _, b := range ranked {
			counts[bridge.Classify(b)]++
		}
		fmt.Printf("\n%d high, %d medium, %d low priority bridges\n",
			counts[bridge.PriorityHigh], counts[bridge.PriorityMedium], counts[bridge.PriorityLow])

		ids := make([]int, len(ranked))
		for i, b := range ranked {
			ids[i] = b.ID
		}
		listBridges(bridges, ids, func(b *types.Bridge) string {
			return bridgeLine(b) + " " + priorityTag(bridge.Classify(b))
		})
		return nil
	},
}

// rankByPriority returns the rated bridges (restricted to level when set)
// ordered by current BCI ascending. Equal ratings keep collection order.
func rankByPriority(bridges []*types.Bridge, level bridge.Priority) []*types.Bridge {
	var ranked []*types.Bridge
	for _, b := range bridges {
		p := bridge.Classify(b)
		if p == bridge.PriorityNone || (level != "" && p != level) {
			continue
		}
		ranked = append(ranked, b)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := ranked[i].CurrentBCI()
		b, _ := ranked[j].CurrentBCI()
		return a < b
	})
	return ranked
}

// ---------------- Inspector assignment ----------------

var (
	assignInspectors []string
	assignMax        int
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign bridges to inspectors by priority and distance",
	Long: `Each inspector, in the order given, receives the first --max bridges, in
inventory order, that are still unassigned and that it can reach under any
priority tier: BCI <= 60 within 500 km, BCI <= 70 within 250 km, or any
rated bridge within 100 km. A bridge goes to at most one inspector, so
earlier inspectors win contested bridges.

Example:
  bridges assign --inspector 43.20,-80.35 --inspector 45.0368,-81.34 --max 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inspectors, err := parseInspectors(assignInspectors)
		if err != nil {
			return err
		}
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}

		assignments := bridge.AssignInspectors(bridges, inspectors, assignMax)
		for i, ids := range assignments {
			in := inspectors[i]
			fmt.Printf("Inspector %d (%.4f, %.4f): %d bridges\n", i+1, in.Latitude, in.Longitude, len(ids))
			for _, id := range ids {
				b := bridge.Get(bridges, id)
				fmt.Printf("  %s %s\n", bridgeLine(b), priorityTag(bridge.Classify(b)))
			}
		}
		return nil
	},
}

func init() {
	priorityCmd.Flags().StringVar(&priorityLevel, "level", "", "Only show one priority: high, medium or low")

	assignCmd.Flags().StringArrayVar(&assignInspectors, "inspector", nil, "Inspector location as lat,lon (repeatable)")
	assignCmd.Flags().IntVar(&assignMax, "max", 5, "Maximum bridges per inspector")
	assignCmd.MarkFlagRequired("inspector")

	rootCmd.AddCommand(priorityCmd, assignCmd)
}

// parseInspectors parses "lat,lon" pairs.
func parseInspectors(values []string) ([]types.Inspector, error) {
	inspectors := make([]types.Inspector, 0, len(values))
	for _, v := range values {
		latStr, lonStr, ok := strings.Cut(v, ",")
		if !ok {
			return nil, fmt.Errorf("inspector %q: want lat,lon", v)
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("inspector %q: want lat,lon", v)
		}
		inspectors = append(inspectors, types.Inspector{Latitude: lat, Longitude: lon})
	}
	return inspectors, nil
}

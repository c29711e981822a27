package main

import (
	"fmt"
	"strconv"
	"strings"

	"bridges/internal/bridge"
	"bridges/internal/geo"
	"bridges/internal/types"
)

// renderBridge prints one bridge record in a readable layout.
func renderBridge(b *types.Bridge, bridges []*types.Bridge, regions []geo.Region) {
	orNone := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Bridge            : %d\n", b.ID)
	fmt.Printf("Name              : %s\n", b.Name)
	fmt.Printf("Highway           : %s\n", b.Highway)
	fmt.Printf("Location          : %.6f, %.6f\n", b.Latitude, b.Longitude)
	fmt.Println()

	fmt.Printf("Year Built        : %s\n", orNone(b.YearBuilt))
	fmt.Printf("Last Major Rehab  : %s\n", orNone(b.LastMajorRehab))
	fmt.Printf("Last Minor Rehab  : %s\n", orNone(b.LastMinorRehab))
	fmt.Println()

	fmt.Printf("Spans             : %d %s\n", b.SpanCount, formatSpans(b.SpanLengths))
	fmt.Printf("Total Length (m)  : %s\n", strconv.FormatFloat(b.TotalLength, 'f', -1, 64))
	fmt.Println()

	fmt.Printf("Last Inspected    : %s\n", orNone(b.LastInspected))
	if bci, ok := b.CurrentBCI(); ok {
		fmt.Printf("Current BCI       : %.1f %s\n", bci, priorityTag(bridge.Classify(b)))
		fmt.Printf("Average BCI       : %.4f over %d inspections\n", bridge.AverageCondition(bridges, b.ID), len(b.BCIHistory))
	} else {
		fmt.Println("Current BCI       : never rated")
	}

	if closest := bridge.Closest(bridges, b.ID); closest != bridge.NotFound {
		other := bridge.Get(bridges, closest)
		fmt.Printf("Closest Bridge    : %d %s (%.3f km)\n", other.ID, other.Name, bridge.DistanceBetween(b, other))
	}

	if len(regions) > 0 {
		if region, found := geo.FindRegion(regions, b.Latitude, b.Longitude); found {
			fmt.Printf("Region            : %s\n", orNone(strings.TrimSpace(region.Attrs[cfg.Regions.Field])))
		} else {
			fmt.Println("Region            : outside every region")
		}
	}
	fmt.Println(strings.Repeat("-", 80))
}

// bridgeLine is the one-line summary used in lists.
func bridgeLine(b *types.Bridge) string {
	bci := "  n/a"
	if v, ok := b.CurrentBCI(); ok {
		bci = fmt.Sprintf("%5.1f", v)
	}
	return fmt.Sprintf("%6d | %-40.40s | Hwy %-6s | BCI %s", b.ID, b.Name, b.Highway, bci)
}

func formatSpans(spans []float64) string {
	if len(spans) == 0 {
		return ""
	}
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = strconv.FormatFloat(s, 'f', -1, 64)
	}
	return "(" + strings.Join(parts, " / ") + " m)"
}

func priorityTag(p bridge.Priority) string {
	switch p {
	case bridge.PriorityHigh:
		return colorRed + "[high]" + colorReset
	case bridge.PriorityMedium:
		return colorYellow + "[medium]" + colorReset
	case bridge.PriorityLow:
		return colorGreen + "[low]" + colorReset
	}
	return ""
}

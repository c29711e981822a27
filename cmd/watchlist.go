package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bridges/internal/bridge"
	"bridges/internal/types"
)

// loadWatchlist returns the bridge ids stored in the watchlist file, one per
// line. If the file does not exist, an empty slice is returned without error.
func loadWatchlist(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // nothing watched yet
		}
		return nil, err
	}
	defer f.Close()

	var ids []int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("watchlist %s: bad id %q", path, line)
		}
		ids = append(ids, id)
	}
	return ids, scanner.Err()
}

// addToWatchlist appends id to the watchlist file unless it is already
// there. It reports whether the id was added.
func addToWatchlist(path string, id int) (bool, error) {
	existing, err := loadWatchlist(path)
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if e == id {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err = fmt.Fprintln(f, id); err != nil {
		return false, err
	}
	return true, nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep a personal list of bridges to follow",
}

var watchAddCmd = &cobra.Command{
	Use:   "add <ids...>",
	Short: "Add bridges to the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		for _, id := range ids {
			added, err := addToWatchlist(cfg.Watchlist, id)
			if err != nil {
				return fmt.Errorf("failed to save watchlist: %w", err)
			}
			if added {
				fmt.Printf("Watching bridge %d\n", id)
			} else {
				fmt.Printf("Bridge %d already on the watchlist\n", id)
			}
		}
		return nil
	},
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the watched bridges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := loadWatchlist(cfg.Watchlist)
		if err != nil {
			return fmt.Errorf("failed to load watchlist: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("No bridges watched yet. Use \"bridges watch add <id>\" to follow one.")
			return nil
		}

		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}

		var known []int
		for _, id := range ids {
			if bridge.Get(bridges, id) == nil {
				fmt.Printf("%6d | no longer in the inventory\n", id)
				continue
			}
			known = append(known, id)
		}
		listBridges(bridges, known, func(b *types.Bridge) string {
			return bridgeLine(b) + " " + priorityTag(bridge.Classify(b))
		})
		return nil
	},
}

func init() {
	watchCmd.AddCommand(watchAddCmd, watchListCmd)
	rootCmd.AddCommand(watchCmd)
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bridges/internal/bridge"
	"bridges/internal/geo"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV export into the database, replacing stored bridges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bridges, err := bridge.LoadFile(cfg.DataFile)
		if err != nil {
			var fe *bridge.FormatError
			if errors.As(err, &fe) {
				logger.Error("malformed export", zap.Int("row", fe.Row), zap.String("field", fe.Field), zap.String("value", fe.Value))
			}
			return err
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveBridges(ctx, bridges); err != nil {
			return err
		}
		fmt.Printf("Imported %d bridges from %s into %s database\n", len(bridges), cfg.DataFile, cfg.Database.Driver)
		return nil
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the bridges as a point shapefile for GIS tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bridges, err := loadBridges(cmd.Context())
		if err != nil {
			return err
		}
		if err := geo.WriteShapefile(exportOut, bridges); err != nil {
			return err
		}
		fmt.Printf("Wrote %d bridges to %s\n", len(bridges), exportOut)
		return nil
	},
}

var regionCmd = &cobra.Command{
	Use:   "region [ids...]",
	Short: "Label bridges with the region polygon they fall in",
	Long: `Looks each bridge up in a polygon shapefile (WGS-84 degrees) and prints the
value of the region field. Every bridge is checked when no ids are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Regions.Layer == "" {
			return fmt.Errorf("no region layer: pass --layer or set regions.layer in the config")
		}
		regions, err := geo.LoadRegions(cfg.Regions.Layer)
		if err != nil {
			return err
		}
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

		counts := map[string]int{}
		for _, id := range ids {
			b := bridge.Get(bridges, id)
			if b == nil {
				fmt.Printf("%6d | no such bridge\n", id)
				continue
			}
			name := "-"
			if region, found := geo.FindRegion(regions, b.Latitude, b.Longitude); found {
				name = strings.TrimSpace(region.Attrs[cfg.Regions.Field])
			}
			counts[name]++
			fmt.Printf("%6d | %-40.40s | %s\n", b.ID, b.Name, name)
		}
		logger.Debug("region lookup", zap.Int("regions", len(regions)), zap.Any("counts", counts))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "bridges.shp", "Output shapefile path")

	regionCmd.Flags().String("layer", "", "Polygon shapefile (overrides regions.layer)")
	regionCmd.Flags().String("field", "", "Attribute holding the region name (overrides regions.field)")
	regionCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetString("layer"); v != "" {
			cfg.Regions.Layer = v
		}
		if v, _ := cmd.Flags().GetString("field"); v != "" {
			cfg.Regions.Field = v
		}
	}

	rootCmd.AddCommand(importCmd, exportCmd, regionCmd)
}

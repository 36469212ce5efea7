package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/internal/registry"
	"github.com/shenikar/danger_zones/internal/resolver"
	"github.com/shenikar/danger_zones/pkg/geo"
	"github.com/shenikar/danger_zones/pkg/postgres"
	"github.com/spf13/cobra"
)

var (
	seedFile string

	lat, lon, radiusKm float64

	databaseURL    string
	migrationsPath string
)

var rootCmd = &cobra.Command{
	Use:   "zonectl",
	Short: "Offline tooling for the danger zones service",
	Long:  `Inspect a zones seed file, resolve coordinates against it and apply database migrations.`,
}

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List zones from the seed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		zones, err := registry.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}
		return printZones(cmd.OutOrStdout(), zones)
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Resolve the zone nearest to a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		zones, err := registry.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}
		return printNearest(cmd.OutOrStdout(), zones, geo.Coordinate{Lat: lat, Lon: lon})
	},
}

var withinCmd = &cobra.Command{
	Use:   "within",
	Short: "List zones within a radius of a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		zones, err := registry.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}
		return printWithin(cmd.OutOrStdout(), zones, geo.Coordinate{Lat: lat, Lon: lon}, radiusKm)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return fmt.Errorf("database URL is required (--database-url or DATABASE_URL)")
		}
		applied, err := postgres.Migrate(migrationsPath, databaseURL)
		if err != nil {
			return err
		}
		if applied {
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No new migrations")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&seedFile, "seed", "f", "configs/zones.json", "Zones seed file path")

	for _, cmd := range []*cobra.Command{nearestCmd, withinCmd} {
		cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
		cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
		_ = cmd.MarkFlagRequired("lat")
		_ = cmd.MarkFlagRequired("lon")
	}
	withinCmd.Flags().Float64VarP(&radiusKm, "radius", "r", 1.0, "Search radius in km")

	migrateCmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.Flags().StringVar(&migrationsPath, "source", "file://migrations", "Migrations source URL")

	rootCmd.AddCommand(zonesCmd, nearestCmd, withinCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printZones(w io.Writer, zones []models.Zone) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLAT\tLON\tCONFIRMED\tRISK")
	for _, z := range zones {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%d\t%s\n",
			z.ID, z.Name, z.Location.Lat, z.Location.Lon, z.ConfirmedIncidents, z.Risk())
	}
	return tw.Flush()
}

func printNearest(w io.Writer, zones []models.Zone, point geo.Coordinate) error {
	zone, dist, err := resolver.Nearest(point, zones)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s (%s) %.3f km, risk %s\n", zone.Name, zone.ID, dist, zone.Risk())
	return err
}

func printWithin(w io.Writer, zones []models.Zone, point geo.Coordinate, radius float64) error {
	matches, err := resolver.NewIndex(zones).Within(point, radius)
	if err != nil {
		return err
	}
	byID := make(map[string]models.Zone, len(zones))
	for _, z := range zones {
		byID[z.ID.String()] = z
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDISTANCE_KM\tRISK")
	for _, m := range matches {
		z := byID[m.ZoneID.String()]
		fmt.Fprintf(tw, "%s\t%.3f\t%s\n", z.Name, m.DistanceKm, z.Risk())
	}
	return tw.Flush()
}

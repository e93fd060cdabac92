package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
	"github.com/s0up4200/sonarview/sonarqube"
)

var hotspotStatus string

// hotspotsCmd represents the hotspots command
var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "List security hotspots",
	Long:  `List the project's security hotspots, by default those still to review.`,
	RunE:  runHotspots,
}

func init() {
	rootCmd.AddCommand(hotspotsCmd)

	hotspotsCmd.Flags().StringVar(&hotspotStatus, "status", sonarqube.DefaultHotspotStatus, "hotspot status (TO_REVIEW, REVIEWED)")
}

func runHotspots(cmd *cobra.Command, args []string) error {
	hotspots, err := client.GetHotspots(cmd.Context(), hotspotStatus)
	if err != nil {
		return fmt.Errorf("failed to get hotspots: %w", err)
	}

	output.PrintHotspots(hotspots, client.ProjectKey(), asJSON)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/sonarview/output"
)

var duplicationDetails bool

// detailWorkers caps concurrent per-file duplication lookups so a large
// project doesn't hammer the server.
const detailWorkers = 4

// duplicationsCmd represents the duplications command
var duplicationsCmd = &cobra.Command{
	Use:   "duplications",
	Short: "Show duplicated code",
	Long:  `List the project's files containing duplicated code. With --details, each file also shows where its blocks are duplicated.`,
	RunE:  runDuplications,
}

func init() {
	rootCmd.AddCommand(duplicationsCmd)

	duplicationsCmd.Flags().BoolVar(&duplicationDetails, "details", false, "fetch per-file duplication blocks")
}

func runDuplications(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dups, err := client.GetDuplications(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to get duplications: %w", err)
	}

	if duplicationDetails && len(dups) > 0 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(detailWorkers)

		for i := range dups {
			g.Go(func() error {
				blocks, err := client.ShowDuplications(gCtx, dups[i].ComponentKey())
				if err != nil {
					return fmt.Errorf("failed to show duplications for %s: %w", dups[i].File, err)
				}
				dups[i].Blocks = blocks
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	output.PrintDuplications(dups, client.ProjectKey(), asJSON, duplicationDetails)
	return nil
}

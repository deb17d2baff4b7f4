package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Densingh-123/Home-Services/social-svc/internal/storage"
)

func (a *app) migrateLikesCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate-likes",
		Short: "Rewrite legacy like arrays as one record per (business, user)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer closeStore()

			report, err := storage.NewLikeRepository(store).
				MigrateLegacyLikes(cmd.Context(), time.Now().UTC(), dryRun, a.logger)
			if err != nil {
				return fmt.Errorf("migrate likes: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				DryRun bool `json:"dryRun"`
				storage.MigrationReport
			}{dryRun, report})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	return cmd
}

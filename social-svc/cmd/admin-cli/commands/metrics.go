package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Densingh-123/Home-Services/social-svc/internal/service"
	"github.com/Densingh-123/Home-Services/social-svc/internal/storage"
)

func (a *app) metricsCommand() *cobra.Command {
	var caller string

	cmd := &cobra.Command{
		Use:   "metrics <businessId>",
		Short: "Print the social metrics of a business as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer closeStore()

			svc := service.NewMetricsService(service.Dependencies{
				Businesses: storage.NewBusinessRepository(store),
				Likes:      storage.NewLikeRepository(store),
				Ratings:    storage.NewRatingRepository(store),
				Comments:   storage.NewCommentRepository(store),
				Logger:     a.logger,
			}, a.policy)

			metrics, err := svc.GetMetrics(cmd.Context(), args[0], caller)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(metrics)
		},
	}
	cmd.Flags().StringVar(&caller, "as", "", "Identifier to compute likedByCaller for")
	return cmd
}

package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

// MigrationReport counts what MigrateLegacyLikes did, or would do in a dry run.
type MigrationReport struct {
	BusinessesScanned int `json:"businessesScanned"`
	PairsCreated      int `json:"pairsCreated"`
	PairsExisting     int `json:"pairsExisting"`
	ArraysCleared     int `json:"arraysCleared"`
	LegacyDocsRemoved int `json:"legacyDocsRemoved"`
}

// MigrateLegacyLikes rewrites both legacy like shapes into canonical pair
// records. Running it again is a no-op. Bare numeric like counters are left
// in place since they carry no membership.
func (r *LikeRepository) MigrateLegacyLikes(ctx context.Context, now time.Time, dryRun bool, logger *zap.Logger) (MigrationReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var report MigrationReport

	businesses, err := r.Store.List(ctx, BusinessCollection, 0)
	if err != nil {
		return report, err
	}
	for _, doc := range businesses {
		report.BusinessesScanned++
		businessID := stringValue(doc[docstore.IDField])
		users := legacyLikes(doc["likes"])
		if len(users) == 0 {
			continue
		}
		if err := r.ensurePairs(ctx, businessID, users, now, dryRun, &report); err != nil {
			return report, err
		}
		if !dryRun {
			elements := make([]any, len(users))
			for i, u := range users {
				elements[i] = u
			}
			if err := r.Store.Update(ctx, BusinessCollection, businessID, docstore.ArrayRemove("likes", elements...)); err != nil {
				return report, err
			}
		}
		report.ArraysCleared++
		logger.Info("migrated embedded likes", zap.String("business_id", businessID), zap.Int("users", len(users)), zap.Bool("dry_run", dryRun))
	}

	likeDocs, err := r.Store.List(ctx, LikesCollection, 0)
	if err != nil {
		return report, err
	}
	for _, doc := range likeDocs {
		raw, ok := doc["users"]
		if !ok {
			continue
		}
		docID := stringValue(doc[docstore.IDField])
		businessID := strings.TrimSpace(stringValue(doc["businessId"]))
		if businessID == "" {
			businessID = docID
		}
		if err := r.ensurePairs(ctx, businessID, legacyLikes(raw), now, dryRun, &report); err != nil {
			return report, err
		}
		if !dryRun {
			if err := r.Store.Delete(ctx, LikesCollection, docID); err != nil {
				return report, err
			}
		}
		report.LegacyDocsRemoved++
		logger.Info("migrated likes document", zap.String("doc_id", docID), zap.String("business_id", businessID), zap.Bool("dry_run", dryRun))
	}
	return report, nil
}

func (r *LikeRepository) ensurePairs(ctx context.Context, businessID string, users []string, now time.Time, dryRun bool, report *MigrationReport) error {
	seen := make(map[string]struct{}, len(users))
	for _, user := range users {
		user = strings.TrimSpace(user)
		if _, ok := seen[user]; ok {
			continue
		}
		seen[user] = struct{}{}
		_, err := r.Store.Get(ctx, LikesCollection, PairID(businessID, user))
		switch {
		case err == nil:
			report.PairsExisting++
			continue
		case !errors.Is(err, docstore.ErrNotFound):
			return err
		}
		if !dryRun {
			if err := r.Add(ctx, &domain.Business{ID: businessID}, user, now); err != nil {
				return err
			}
		}
		report.PairsCreated++
	}
	return nil
}

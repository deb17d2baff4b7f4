package storage

import (
	"context"
	"sort"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

type CommentRepository struct {
	Store docstore.Store
}

func NewCommentRepository(store docstore.Store) *CommentRepository {
	return &CommentRepository{Store: store}
}

func (r *CommentRepository) List(ctx context.Context, business *domain.Business) ([]domain.Comment, error) {
	docs, err := r.Store.QueryEquals(ctx, CommentsCollection, "businessId", business.ID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Comment, 0, len(docs))
	for _, doc := range docs {
		var comment domain.Comment
		if err := docstore.Decode(doc, &comment); err != nil {
			return nil, err
		}
		comment.UserID = identity.Normalize(comment.UserID)
		records = append(records, comment)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return createdBefore(records[i].CreatedAt, records[i].ID, records[j].CreatedAt, records[j].ID)
	})

	return append(append([]domain.Comment{}, business.LegacyComments...), records...), nil
}

func (r *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	stored := *comment
	stored.Author = ""
	doc, err := docstore.Encode(stored)
	if err != nil {
		return err
	}
	delete(doc, docstore.IDField)
	return r.Store.Set(ctx, CommentsCollection, comment.ID, doc, false)
}

package storage

import (
	"context"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/docstore"
)

const (
	BusinessCollection = "BusinessList"
	CategoryCollection = "Category"
	SliderCollection   = "Slider"
	CartCollection     = "Cart"
)

type BusinessRepository struct {
	Store docstore.Store
}

func NewBusinessRepository(store docstore.Store) *BusinessRepository {
	return &BusinessRepository{Store: store}
}

// CreateBusiness merges into any existing document so engagement arrays
// written by older clients survive a re-import.
func (r *BusinessRepository) CreateBusiness(ctx context.Context, business *domain.Business) error {
	doc, err := docstore.Encode(business)
	if err != nil {
		return err
	}
	delete(doc, docstore.IDField)
	return r.Store.Set(ctx, BusinessCollection, business.ID, doc, true)
}

func (r *BusinessRepository) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	doc, err := r.Store.Get(ctx, BusinessCollection, id)
	if err != nil {
		return nil, err
	}
	return decodeBusiness(doc)
}

func (r *BusinessRepository) ListBusinesses(ctx context.Context, field, value string) ([]domain.Business, error) {
	docs, err := r.Store.QueryEquals(ctx, BusinessCollection, field, value)
	if err != nil {
		return nil, err
	}
	return decodeBusinesses(docs)
}

func (r *BusinessRepository) FirstBusinesses(ctx context.Context, limit int) ([]domain.Business, error) {
	docs, err := r.Store.List(ctx, BusinessCollection, limit)
	if err != nil {
		return nil, err
	}
	return decodeBusinesses(docs)
}

func (r *BusinessRepository) DeleteBusiness(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, BusinessCollection, id)
}

// decodeBusiness tolerates documents from older clients, which stored likes
// as a number or an array; those fields are not part of domain.Business.
func decodeBusiness(doc docstore.Document) (*domain.Business, error) {
	var business domain.Business
	if err := docstore.Decode(withoutLegacy(doc), &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func withoutLegacy(doc docstore.Document) docstore.Document {
	trimmed := make(docstore.Document, len(doc))
	for k, v := range doc {
		switch k {
		case "likes", "ratings", "comments":
			continue
		case "createdAt", "addedAt":
			if _, ok := v.(string); !ok {
				continue
			}
		}
		trimmed[k] = v
	}
	return trimmed
}

func decodeBusinesses(docs []docstore.Document) ([]domain.Business, error) {
	out := make([]domain.Business, 0, len(docs))
	for _, doc := range docs {
		business, err := decodeBusiness(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *business)
	}
	return out, nil
}

type CategoryRepository struct {
	Store docstore.Store
}

func NewCategoryRepository(store docstore.Store) *CategoryRepository {
	return &CategoryRepository{Store: store}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	docs, err := r.Store.List(ctx, CategoryCollection, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		var category domain.Category
		if err := docstore.Decode(doc, &category); err != nil {
			return nil, err
		}
		out = append(out, category)
	}
	return out, nil
}

func (r *CategoryRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	return r.Store.Set(ctx, CategoryCollection, category.ID, docstore.Document{
		"name": category.Name,
		"icon": category.Icon,
	}, false)
}

type SliderRepository struct {
	Store docstore.Store
}

func NewSliderRepository(store docstore.Store) *SliderRepository {
	return &SliderRepository{Store: store}
}

func (r *SliderRepository) ListSlides(ctx context.Context) ([]domain.Slide, error) {
	docs, err := r.Store.List(ctx, SliderCollection, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Slide, 0, len(docs))
	for _, doc := range docs {
		var slide domain.Slide
		if err := docstore.Decode(doc, &slide); err != nil {
			return nil, err
		}
		out = append(out, slide)
	}
	return out, nil
}

type CartRepository struct {
	Store docstore.Store
}

func NewCartRepository(store docstore.Store) *CartRepository {
	return &CartRepository{Store: store}
}

func (r *CartRepository) SaveItem(ctx context.Context, item *domain.CartItem) error {
	doc, err := docstore.Encode(item)
	if err != nil {
		return err
	}
	delete(doc, docstore.IDField)
	return r.Store.Set(ctx, CartCollection, item.ID, doc, false)
}

func (r *CartRepository) ListItems(ctx context.Context, userEmail string) ([]domain.CartItem, error) {
	docs, err := r.Store.QueryEquals(ctx, CartCollection, "userEmail", userEmail)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CartItem, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeCartItem(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, userEmail, businessID string) error {
	return r.Store.Delete(ctx, CartCollection, docstore.CompositeID(userEmail, businessID))
}

func (r *CartRepository) DeleteByBusiness(ctx context.Context, businessID string) error {
	docs, err := r.Store.QueryEquals(ctx, CartCollection, "businessId", businessID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		id, _ := doc[docstore.IDField].(string)
		if err := r.Store.Delete(ctx, CartCollection, id); err != nil {
			return err
		}
	}
	return nil
}

func decodeCartItem(doc docstore.Document) (domain.CartItem, error) {
	var item domain.CartItem
	if err := docstore.Decode(withoutLegacy(doc), &item); err != nil {
		return domain.CartItem{}, err
	}
	item.Business.ID = item.BusinessID
	return item, nil
}

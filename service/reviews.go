package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"menu-ordering/model"
	"menu-ordering/store"
)

// UnknownProduct is the name shown for reviews whose product is not in the
// catalog.
const UnknownProduct = "Unknown Product"

const defaultRating = 5

// ReviewInput is a submitted review form.
type ReviewInput struct {
	ProductID int64  `json:"productId" validate:"required"`
	Username  string `json:"username" validate:"required,min=2"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=10,max=500"`
}

// Reviews persists reviews newest first.
type Reviews struct {
	store   store.Store
	catalog CatalogService
	log     *zap.Logger
	now     func() time.Time
}

func NewReviews(s store.Store, catalog CatalogService, log *zap.Logger) *Reviews {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reviews{store: s, catalog: catalog, log: log, now: time.Now}
}

// List returns stored reviews. The first read on an empty store seeds and
// persists the sample reviews.
func (r *Reviews) List(ctx context.Context) ([]model.Review, error) {
	reviews, found, err := store.LookupList[model.Review](ctx, r.store, store.KeyReviews)
	if err != nil || found {
		return reviews, err
	}
	reviews = sampleReviews()
	if err := store.SaveList(ctx, r.store, store.KeyReviews, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *Reviews) Submit(ctx context.Context, in ReviewInput) (model.Review, error) {
	if in.Rating == 0 {
		in.Rating = defaultRating
	}
	if err := validateStruct(in); err != nil {
		return model.Review{}, err
	}
	rv := model.Review{
		ID:        model.NewID(),
		ProductID: in.ProductID,
		Username:  in.Username,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Date:      r.now().UTC(),
	}
	err := store.UpdateList(ctx, r.store, store.KeyReviews, func(reviews []model.Review) ([]model.Review, error) {
		return append([]model.Review{rv}, reviews...), nil
	})
	if err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

// ProductNames maps product ids to names. An unavailable catalog yields an
// empty map so every review falls back to UnknownProduct.
func (r *Reviews) ProductNames(ctx context.Context) map[int64]string {
	products, err := r.catalog.LoadProducts(ctx)
	if err != nil {
		r.log.Warn("catalog unavailable for review names", zap.Error(err))
		return map[int64]string{}
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}

// ProductName resolves one product name. Listings should call ProductNames
// once and use NameOf instead.
func (r *Reviews) ProductName(ctx context.Context, productID int64) string {
	return NameOf(r.ProductNames(ctx), productID)
}

// NameOf looks id up in names, defaulting to UnknownProduct.
func NameOf(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return UnknownProduct
}

func sampleReviews() []model.Review {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	return []model.Review{
		{ID: 1, ProductID: 1, Username: "John Doe", Rating: 5, Comment: "Excellent pizza! Best in town.", Date: day(15)},
		{ID: 2, ProductID: 2, Username: "Jane Smith", Rating: 4, Comment: "Good burger, but could be bigger.", Date: day(14)},
		{ID: 3, ProductID: 3, Username: "Mike Johnson", Rating: 5, Comment: "Fresh and tasty salad!", Date: day(13)},
	}
}

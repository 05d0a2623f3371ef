package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/Mdwaseel/batsdatacollection/internal/dto"
	"github.com/Mdwaseel/batsdatacollection/internal/export"
	"github.com/Mdwaseel/batsdatacollection/internal/model"
	"github.com/Mdwaseel/batsdatacollection/internal/repository"
)

// confirmWindow is how long a delete stays pending before the first call has
// to be repeated.
const confirmWindow = 5 * time.Minute

// ProductService defines the catalog operations behind the HTTP surface.
type ProductService interface {
	// Create uploads every submitted image sequentially, assembles the
	// record and persists it. A failed image is recorded as absent and
	// reported as a warning, never as a failed save.
	Create(ctx context.Context, req dto.CreateProductRequest, images dto.ImageSet) (dto.CreateProductResponse, error)
	ListAll(ctx context.Context) (dto.ProductListResponse, error)
	Search(ctx context.Context, query string) (dto.SearchResponse, error)
	// Delete is two-step: the first call for an id marks it pending, the
	// second call within the confirm window commits the delete.
	Delete(ctx context.Context, id uuid.UUID) (dto.DeleteOutcome, error)
	Count(ctx context.Context) (int64, error)
}

type productService struct {
	repo   repository.ProductRepository
	assets AssetService

	// Pending delete confirmations, keyed by product id. This replaces the
	// original per-button UI state with an explicit confirm/commit registry.
	confirmMu sync.Mutex
	pending   map[uuid.UUID]time.Time
}

func NewProductService(repo repository.ProductRepository, assets AssetService) ProductService {
	return &productService{
		repo:    repo,
		assets:  assets,
		pending: make(map[uuid.UUID]time.Time),
	}
}

// uploadOptional runs one optional image through the asset pipeline. A
// refused or failed image yields a nil asset plus a warning for the caller.
func (s *productService) uploadOptional(ctx context.Context, up *dto.ImageUpload, folder string) (*model.StoredAsset, string) {
	if up == nil {
		return nil, ""
	}
	asset, err := s.assets.Upload(ctx, *up, folder)
	if err != nil {
		log.Warn().Err(err).Str("filename", up.Filename).Str("folder", folder).Msg("image skipped")
		return nil, err.Error()
	}
	return asset, ""
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest, images dto.ImageSet) (dto.CreateProductResponse, error) {
	var warnings []string
	note := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	// Uploads are strictly sequential and non-transactional: an image that
	// fails after earlier ones succeeded is simply absent from the record.
	mainAsset, w := s.uploadOptional(ctx, images.Main, model.FolderMain)
	note(w)

	var gallery []model.StoredAsset
	for i := range images.Gallery {
		asset, w := s.uploadOptional(ctx, &images.Gallery[i], model.FolderGallery)
		note(w)
		if asset != nil {
			gallery = append(gallery, *asset)
		}
	}

	variationAssets := make(map[int]*model.StoredAsset)
	if req.ProductType == model.TypeVariable {
		for i := range req.Variations {
			asset, w := s.uploadOptional(ctx, images.Variations[i], model.FolderVariations)
			note(w)
			variationAssets[i] = asset
		}
	}

	var editionAsset, laserAsset *model.StoredAsset
	if req.ProductType == model.TypeDeepCustomization && req.DeepCustomization != nil {
		editionAsset, w = s.uploadOptional(ctx, images.Edition, model.FolderEdition)
		note(w)
		laserAsset, w = s.uploadOptional(ctx, images.Laser, model.FolderLaser)
		note(w)
	}

	p := buildProduct(req, mainAsset, gallery, variationAssets, editionAsset, laserAsset)

	if err := s.repo.Create(ctx, p); err != nil {
		return dto.CreateProductResponse{}, err
	}

	log.Info().Str("id", p.ID.String()).Str("name", p.ProductName).Msg("product saved")
	return dto.CreateProductResponse{Product: *p, Warnings: warnings}, nil
}

// buildProduct is the pure assembly step: pre-validated input plus stored
// assets in, canonical record out. Exactly one variant payload is populated,
// chosen by the discriminant; zero-valued sale price and weight become NULL.
func buildProduct(req dto.CreateProductRequest, main *model.StoredAsset, gallery []model.StoredAsset,
	variationAssets map[int]*model.StoredAsset, edition, laser *model.StoredAsset) *model.Product {

	p := &model.Product{
		ProductName:      req.ProductName,
		ProductType:      req.ProductType,
		SKU:              req.SKU,
		RegularPrice:     req.RegularPrice,
		StockStatus:      req.StockStatus,
		StockQuantity:    req.StockQuantity,
		Category:         req.Category,
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		ProductData: datatypes.JSONMap{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	// "Not provided" is NULL, distinct from an explicit zero the form
	// cannot express.
	if !req.SalePrice.IsZero() {
		sp := req.SalePrice
		p.SalePrice = &sp
	}
	if !req.Weight.IsZero() {
		wt := req.Weight
		p.Weight = &wt
	}

	if main != nil {
		j := datatypes.NewJSONType(*main)
		p.MainImage = &j
	}
	if len(gallery) > 0 {
		p.GalleryImages = datatypes.NewJSONSlice(gallery)
	}

	switch req.ProductType {
	case model.TypeVariable:
		variations := make([]model.Variation, 0, len(req.Variations))
		for i, v := range req.Variations {
			variations = append(variations, model.Variation{
				Name:  v.Name,
				Price: v.Price,
				SKU:   v.SKU,
				Stock: v.Stock,
				Image: variationAssets[i],
			})
		}
		p.Variations = datatypes.NewJSONSlice(variations)
	case model.TypeDeepCustomization:
		if req.DeepCustomization != nil {
			shapes := make([]model.HandleShape, 0, len(req.DeepCustomization.HandleShapes))
			for _, label := range req.DeepCustomization.HandleShapes {
				if label != "" {
					shapes = append(shapes, model.HandleShape{Label: label})
				}
			}
			dc := model.DeepCustomization{
				Enabled: req.DeepCustomization.Enabled,
				Edition: model.Edition{
					Heading:          req.DeepCustomization.Edition.Heading,
					Subtitle:         req.DeepCustomization.Edition.Subtitle,
					ShortDescription: req.DeepCustomization.Edition.ShortDescription,
					Grains:           req.DeepCustomization.Edition.Grains,
					Grade:            req.DeepCustomization.Edition.Grade,
					GrainDescription: req.DeepCustomization.Edition.GrainDescription,
					Image:            edition,
				},
				HandleShapes: shapes,
				LaserEngraving: model.LaserEngraving{
					Enabled:  req.DeepCustomization.LaserEngraving.Enabled,
					Price:    req.DeepCustomization.LaserEngraving.Price,
					MaxChars: req.DeepCustomization.LaserEngraving.MaxChars,
					Image:    laser,
				},
			}
			j := datatypes.NewJSONType(dc)
			p.DeepCustomization = &j
		}
	}

	return p
}

func (s *productService) ListAll(ctx context.Context) (dto.ProductListResponse, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return dto.ProductListResponse{}, err
	}
	stats := export.Stats(products)
	return dto.ProductListResponse{
		Data: products,
		Summary: dto.CatalogSummary{
			TotalProducts: len(products),
			CricketBats:   stats.ByType[string(model.TypeDeepCustomization)],
			InStock:       stats.ByStock[string(model.InStock)],
			TotalValue:    stats.TotalValue,
		},
	}, nil
}

func (s *productService) Search(ctx context.Context, query string) (dto.SearchResponse, error) {
	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return dto.SearchResponse{}, err
	}
	return dto.SearchResponse{Data: products, Total: len(products)}, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) (dto.DeleteOutcome, error) {
	s.confirmMu.Lock()
	for pid, at := range s.pending {
		if time.Since(at) > confirmWindow {
			delete(s.pending, pid)
		}
	}
	if _, ok := s.pending[id]; !ok {
		s.pending[id] = time.Now()
		s.confirmMu.Unlock()
		return dto.DeleteOutcome{ConfirmRequired: true}, nil
	}
	delete(s.pending, id)
	s.confirmMu.Unlock()

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dto.DeleteOutcome{}, err
	}
	log.Info().Str("id", id.String()).Msg("product deleted")
	return dto.DeleteOutcome{Deleted: ok}, nil
}

func (s *productService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

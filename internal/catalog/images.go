package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"

	"greengrass/internal/models"
)

const productMediaFolder = "products"

// PublicImageURL is where the storage bucket serves a product image.
func PublicImageURL(supabaseURL, fileName string) string {
	return strings.TrimRight(supabaseURL, "/") + "/storage/v1/object/public/media/products/" + fileName
}

// LinkProductImages points each product's featured image at the uploaded
// media file whose base name equals the product slug or its slugified name.
// It returns how many products changed.
func (s *ProductService) LinkProductImages(ctx context.Context, supabaseURL string) (int, error) {
	var files []models.MediaFile
	if err := s.db.WithContext(ctx).Where("folder = ?", productMediaFolder).Find(&files).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch media files: %w", err)
	}
	if len(files) == 0 {
		return 0, nil
	}

	byBase := make(map[string]string, len(files))
	for _, f := range files {
		base := strings.ToLower(strings.TrimSuffix(f.FileName, path.Ext(f.FileName)))
		if _, ok := byBase[base]; !ok {
			byBase[base] = f.FileName
		}
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	updated := 0
	for _, p := range products {
		file, ok := byBase[strings.ToLower(p.Slug)]
		if !ok {
			file, ok = byBase[Slugify(p.Name)]
		}
		if !ok {
			continue
		}

		url := PublicImageURL(supabaseURL, file)
		if p.FeaturedImage != nil && *p.FeaturedImage == url {
			continue
		}
		err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", p.ID).
			Update("featured_image", url).Error
		if err != nil {
			return updated, fmt.Errorf("failed to update product %s: %w", p.Slug, err)
		}
		updated++
	}
	return updated, nil
}

// Package atlas orchestrates the catalog pipeline: listing storage
// locations, extracting geoparquet metadata, building asset descriptors,
// and assembling and publishing the Atlas catalog tree.
package atlas

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AdaptationAtlas/data-management/internal/catalog"
	"github.com/AdaptationAtlas/data-management/internal/config"
	"github.com/AdaptationAtlas/data-management/internal/geoparquet"
	"github.com/AdaptationAtlas/data-management/internal/metrics"
	"github.com/AdaptationAtlas/data-management/internal/storage"
	"go.uber.org/zap"
)

const parquetExtension = ".parquet"

type objectStore interface {
	Objects(ctx context.Context, location string, recursive bool) ([]storage.Object, error)
	Open(ctx context.Context, key string) (storage.Reader, int64, error)
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// Service runs the metadata-extraction and asset-construction pipeline.
type Service struct {
	store objectStore
	cfg   config.CatalogConfig
	logg  *zap.Logger
}

// NewService constructs the pipeline service.
func NewService(store objectStore, cfg config.CatalogConfig, logg *zap.Logger) *Service {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Service{store: store, cfg: cfg, logg: logg}
}

// Description bundles the asset descriptors for one storage location with
// the geo metadata extracted from its parquet data, when any exists.
type Description struct {
	Assets []catalog.Asset      `json:"assets"`
	Geo    *geoparquet.Metadata `json:"geo_metadata,omitempty"`
}

// DescribeLocation lists the location, extracts geoparquet metadata from its
// first parquet object, and builds one asset descriptor per recognized file.
// Not-found listings and malformed geo metadata propagate; unrecognized
// files are skipped silently.
func (s *Service) DescribeLocation(ctx context.Context, location string, recursive bool) (Description, error) {
	objects, err := s.store.Objects(ctx, location, recursive)
	if err != nil {
		return Description{}, err
	}

	var geo *geoparquet.Metadata
	gpqSchema := ""
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Path, parquetExtension) {
			continue
		}
		meta, err := s.extract(ctx, obj.Path)
		if err != nil {
			return Description{}, err
		}
		geo = &meta
		gpqSchema = meta.SchemaVersion
		break
	}

	assets := catalog.BuildAssets(objects, gpqSchema)
	metrics.AssetsBuiltTotal.Add(float64(len(assets)))
	if skipped := len(objects) - len(assets); skipped > 0 {
		metrics.AssetsSkippedTotal.Add(float64(skipped))
		s.logg.Debug("skipped unrepresentable objects",
			zap.String("location", location),
			zap.Int("count", skipped),
		)
	}

	return Description{Assets: assets, Geo: geo}, nil
}

func (s *Service) extract(ctx context.Context, key string) (geoparquet.Metadata, error) {
	r, size, err := s.store.Open(ctx, key)
	if err != nil {
		return geoparquet.Metadata{}, err
	}
	defer r.Close()

	meta, err := geoparquet.Extract(r, size)
	if err != nil {
		return geoparquet.Metadata{}, fmt.Errorf("extract %q: %w", key, err)
	}
	metrics.ExtractionsTotal.Inc()

	return meta, nil
}

// BuildCatalog assembles the Atlas theme tree and attaches one item per
// configured dataset location.
func (s *Service) BuildCatalog(ctx context.Context) (*catalog.Catalog, error) {
	root := RootCatalog()

	for _, ds := range s.cfg.Datasets {
		theme, ok := root.Child(ds.Theme)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, ds.Theme)
		}

		recursive := strings.HasSuffix(ds.Path, "/")
		desc, err := s.DescribeLocation(ctx, ds.Path, recursive)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", ds.Path, err)
		}

		item := catalog.NewItem(itemID(ds.Path), catalog.NowRFC3339())
		if desc.Geo != nil {
			item.BBox = desc.Geo.BBox
		}
		item.AddAssets(desc.Assets)
		theme.AddItem(item)

		s.logg.Info("dataset cataloged",
			zap.String("theme", ds.Theme),
			zap.String("path", ds.Path),
			zap.Int("assets", len(desc.Assets)),
		)
	}

	metrics.CatalogBuildsTotal.Inc()
	return root, nil
}

// Publish saves the tree to a scratch directory and uploads every exported
// file under the configured publish prefix.
func (s *Service) Publish(ctx context.Context, tree *catalog.Catalog) error {
	dir, err := os.MkdirTemp("", "atlas-stac-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := tree.Save(dir); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}

	prefix := strings.TrimSuffix(s.cfg.PublishPrefix, "/")
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := prefix + "/" + filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open export %q: %w", path, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat export %q: %w", path, err)
		}

		if err := s.store.Upload(ctx, key, f, info.Size(), "application/json"); err != nil {
			return err
		}
		s.logg.Debug("published catalog file", zap.String("key", key))
		return nil
	})
}

// itemID derives a stable item identifier from the dataset location: the
// last non-empty segment of its bucket-relative path.
func itemID(location string) string {
	key := strings.Trim(storage.CleanPath(location), "/")
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		key = key[idx+1:]
	}
	if key == "" {
		return "data"
	}
	// Object locations keep only the base name.
	if idx := strings.LastIndex(key, "."); idx > 0 {
		key = key[:idx]
	}
	return key
}

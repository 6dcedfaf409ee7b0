package mlt

import (
	"github.com/dhconnelly/rtreego"
)

// FeatureIndex provides fast spatial queries over one layer's features.
//
// The index stores feature bounding boxes in an R-tree, so viewport queries
// are O(log N) instead of the O(N) scan over Layer.Features. Build the index
// once per decoded layer and reuse it across queries. The index is read-only
// after construction and safe for concurrent queries.
//
// Example:
//
//	layer, _ := tile.Layer("roads")
//	idx := mlt.NewFeatureIndex(layer)
//
//	viewport := mlt.Bounds{MinX: 0, MinY: 0, MaxX: 2048, MaxY: 2048}
//	visible := idx.Search(viewport)
//
//	fmt.Printf("%d of %d features in viewport\n", len(visible), idx.Count())
type FeatureIndex struct {
	features []Feature
	rtree    *rtreego.Rtree
}

// indexedFeature wraps a feature for R-tree storage.
type indexedFeature struct {
	feature Feature
	bounds  Bounds
}

// rectEpsilon is the minimum R-tree rectangle side in tile units. The R-tree
// requires non-zero dimensions, which zero-area features (points, horizontal
// or vertical lines) would violate.
const rectEpsilon = 0.5

// Bounds implements the rtreego.Spatial interface.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return boundsToRect(f.bounds)
}

// boundsToRect converts tile-coordinate bounds to an R-tree rectangle,
// padding degenerate sides to rectEpsilon.
func boundsToRect(b Bounds) rtreego.Rect {
	point := rtreego.Point{float64(b.MinX), float64(b.MinY)}

	width := float64(b.MaxX) - float64(b.MinX)
	height := float64(b.MaxY) - float64(b.MinY)
	if width < rectEpsilon {
		width = rectEpsilon
	}
	if height < rectEpsilon {
		height = rectEpsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}

// QueryOptions controls spatial query behavior.
type QueryOptions struct {
	// Types filters features by geometry type.
	// If non-empty, only features matching these types are returned.
	// Example: []GeometryType{GeometryTypeLineString, GeometryTypeMultiLineString}
	Types []GeometryType

	// MaxResults caps the number of returned features.
	// If 0, all matching features are returned. Which features are kept
	// when the cap applies is unspecified: index results carry no order.
	MaxResults int
}

// NewFeatureIndex builds a spatial index over a layer's features.
//
// Construction is O(N log N); queries afterwards are O(log N). A nil layer
// yields an empty index.
func NewFeatureIndex(layer *Layer) *FeatureIndex {
	// 2D R-tree, 25..50 children per node.
	rtree := rtreego.NewTree(2, 25, 50)
	idx := &FeatureIndex{rtree: rtree}
	if layer == nil {
		return idx
	}

	idx.features = layer.Features()
	for _, feature := range idx.features {
		rtree.Insert(&indexedFeature{feature: feature, bounds: feature.Bounds()})
	}
	return idx
}

// Search returns all features whose bounding boxes intersect the given
// bounds.
//
// This is the primary method for viewport-based rendering. Results are in
// no particular order. The match is by bounding box: a feature whose box
// intersects the viewport but whose geometry does not is still returned.
func (idx *FeatureIndex) Search(bounds Bounds) []Feature {
	spatials := idx.rtree.SearchIntersect(boundsToRect(bounds))

	result := make([]Feature, 0, len(spatials))
	for _, spatial := range spatials {
		result = append(result, spatial.(*indexedFeature).feature)
	}
	return result
}

// Query returns features intersecting the given bounds, filtered by options.
//
// Example:
//
//	// Up to 100 line features in the viewport
//	lines := idx.Query(viewport, mlt.QueryOptions{
//	    Types:      []mlt.GeometryType{mlt.GeometryTypeLineString},
//	    MaxResults: 100,
//	})
func (idx *FeatureIndex) Query(bounds Bounds, opts QueryOptions) []Feature {
	spatials := idx.rtree.SearchIntersect(boundsToRect(bounds))

	result := make([]Feature, 0, len(spatials))
	for _, spatial := range spatials {
		feature := spatial.(*indexedFeature).feature

		if len(opts.Types) > 0 {
			match := false
			for _, t := range opts.Types {
				if feature.Geometry().Type() == t {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}

		result = append(result, feature)
		if opts.MaxResults > 0 && len(result) >= opts.MaxResults {
			break
		}
	}
	return result
}

// Count returns the total number of features in the index.
func (idx *FeatureIndex) Count() int {
	return len(idx.features)
}

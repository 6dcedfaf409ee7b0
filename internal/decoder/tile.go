package decoder

import (
	"fmt"
	"math"
)

// DecodeTile decodes one serialized MapLibre tile into its layers. Decoding is
// total-or-nothing: a successful call yields every layer fully populated, any
// error leaves no partial output.
//
// Tile layout:
//
//	layerCount: uvarint
//	layerCount layer blocks
//
// Layer block layout:
//
//	nameLen:      uvarint, then nameLen bytes of UTF-8
//	extent:       uvarint       (must fit uint32)
//	featureCount: uvarint       (must fit uint32)
//	idFlag:       byte          (0 = no id column, 1 = id column follows)
//	idColumn:     column block  (only when idFlag = 1; physical type UINT64)
//	geometry:     geometry section
//	propCount:    uvarint
//	propCount property columns, each nameLen:uvarint name column-block
func DecodeTile(data []byte) (*Tile, error) {
	cur := NewByteCursor(data)

	layerCount, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount("tile", layerCount, maxLayerCount); err != nil {
		return nil, err
	}

	tile := &Tile{Layers: make([]Layer, layerCount)}
	for i := range tile.Layers {
		layer, err := decodeLayer(cur)
		if err != nil {
			return nil, err
		}
		tile.Layers[i] = *layer
	}
	if n := cur.Remaining(); n > 0 {
		return nil, &ErrCorruptStream{Stream: "tile", Reason: fmt.Sprintf("%d trailing bytes after last layer", n)}
	}
	return tile, nil
}

// decodeLayer decodes one layer block: header, optional id column, geometry
// section, and property columns, then zips them by row into features.
func decodeLayer(cur *ByteCursor) (*Layer, error) {
	name, err := decodeName(cur, "layer")
	if err != nil {
		return nil, err
	}

	extent, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if extent > math.MaxUint32 {
		return nil, &ErrCorruptStream{Stream: name, Reason: fmt.Sprintf("extent %d exceeds uint32", extent)}
	}
	featureCount, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount(name, featureCount, maxFeatureCount); err != nil {
		return nil, err
	}
	rows := int(featureCount)

	idFlag, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	var idCol *Column
	switch idFlag {
	case 0:
	case 1:
		idCol, err = decodeColumn(cur, "id", name+".id", rows)
		if err != nil {
			return nil, err
		}
		if idCol.Type != PhysicalUint64 {
			return nil, &ErrCorruptStream{
				Stream: name + ".id",
				Reason: fmt.Sprintf("id column has physical type %v, want UINT64", idCol.Type),
			}
		}
	default:
		return nil, &ErrCorruptStream{Stream: name, Reason: fmt.Sprintf("unknown id flag %d", idFlag)}
	}

	geom, err := decodeGeometrySection(cur, name, rows)
	if err != nil {
		return nil, err
	}

	propCount, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount(name, propCount, maxPropertyColumns); err != nil {
		return nil, err
	}
	columns := make([]*Column, propCount)
	seen := make(map[string]bool, propCount)
	for i := range columns {
		propName, err := decodeName(cur, name)
		if err != nil {
			return nil, err
		}
		if seen[propName] {
			return nil, &ErrCorruptStream{Stream: name, Reason: fmt.Sprintf("duplicate property column %q", propName)}
		}
		seen[propName] = true
		columns[i], err = decodeColumn(cur, propName, name+"."+propName, rows)
		if err != nil {
			return nil, err
		}
	}

	layer := &Layer{
		Name:     name,
		Extent:   uint32(extent),
		Features: make([]Feature, rows),
	}
	// Features must be assembled in wire order: the geometry decoder's vertex
	// delta chain spans the whole layer.
	for row := range layer.Features {
		g, err := geom.decodeFeature(row)
		if err != nil {
			return nil, err
		}
		f := Feature{Geometry: g, Properties: buildProperties(columns, row)}
		if idCol != nil {
			if v := idCol.Values[row]; v.Type != ValueNull {
				f.ID = uint64(v.Int)
				f.HasID = true
			}
		}
		layer.Features[row] = f
	}
	if err := geom.finish(); err != nil {
		return nil, err
	}
	return layer, nil
}

// decodeName reads a length-prefixed UTF-8 name. owner names the surrounding
// structure in errors.
func decodeName(cur *ByteCursor, owner string) (string, error) {
	n, err := cur.Uvarint()
	if err != nil {
		return "", err
	}
	if err := checkCount(owner, n, maxNameBytes); err != nil {
		return "", err
	}
	b, err := cur.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

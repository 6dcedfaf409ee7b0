package mlt

import (
	"github.com/beetlebugorg/mlt/internal/decoder"
)

// TileMetadata describes a tile's layers without their decoded payloads.
//
// This is much faster than a full decode as the scan walks only structural
// headers, skipping column payloads by their declared byte lengths. Use it
// for tile inventories and schema discovery.
//
// The scan validates structure only: a tile that scans cleanly may still
// fail Decode, e.g. when a skipped payload uses an unsupported encoding.
type TileMetadata struct {
	Layers []LayerMetadata
}

// LayerMetadata describes one layer.
type LayerMetadata struct {
	Name         string           // Layer name
	Extent       uint32           // Coordinate extent
	FeatureCount int              // Declared feature count
	HasID        bool             // Whether the layer carries an id column
	Columns      []ColumnMetadata // Property columns in declaration order
}

// ColumnMetadata describes one property column.
type ColumnMetadata struct {
	Name     string     // Property key
	Type     ColumnType // Storage type
	Nullable bool       // Whether the column carries a presence bitmap
}

// ColumnType identifies a property column's storage type.
type ColumnType int

const (
	// ColumnTypeBool stores booleans.
	ColumnTypeBool ColumnType = iota

	// ColumnTypeInt64 stores signed 64-bit integers.
	ColumnTypeInt64

	// ColumnTypeUint64 stores unsigned 64-bit integers.
	ColumnTypeUint64

	// ColumnTypeFloat64 stores 64-bit floats.
	ColumnTypeFloat64

	// ColumnTypeString stores UTF-8 strings.
	ColumnTypeString
)

// String returns the human-readable name of the column type.
func (t ColumnType) String() string {
	switch t {
	case ColumnTypeBool:
		return "Bool"
	case ColumnTypeInt64:
		return "Int64"
	case ColumnTypeUint64:
		return "Uint64"
	case ColumnTypeFloat64:
		return "Float64"
	case ColumnTypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// ScanMetadata extracts per-layer metadata from a tile without decoding
// feature payloads.
//
// Gzip and zlib envelopes are detected and decompressed the same way Decode
// does, so the scan works on tiles straight from a tile server.
//
// Example:
//
//	meta, err := mlt.ScanMetadata(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, layer := range meta.Layers {
//	    fmt.Printf("%s: %d features, %d columns\n",
//	        layer.Name, layer.FeatureCount, len(layer.Columns))
//	}
func ScanMetadata(data []byte) (*TileMetadata, error) {
	return ScanMetadataWithOptions(data, DefaultDecodeOptions())
}

// ScanMetadataWithOptions extracts per-layer metadata with custom envelope
// handling.
func ScanMetadataWithOptions(data []byte, opts DecodeOptions) (*TileMetadata, error) {
	body, err := unwrapEnvelope(data, opts)
	if err != nil {
		return nil, err
	}
	infos, err := decoder.ScanTile(body)
	if err != nil {
		return nil, convertError(err)
	}

	meta := &TileMetadata{Layers: make([]LayerMetadata, len(infos))}
	for i, info := range infos {
		columns := make([]ColumnMetadata, len(info.Columns))
		for j, col := range info.Columns {
			columns[j] = ColumnMetadata{
				Name:     col.Name,
				Type:     convertColumnType(col.Type),
				Nullable: col.Nullable,
			}
		}
		meta.Layers[i] = LayerMetadata{
			Name:         info.Name,
			Extent:       info.Extent,
			FeatureCount: int(info.FeatureCount),
			HasID:        info.HasID,
			Columns:      columns,
		}
	}
	return meta, nil
}

func convertColumnType(t decoder.PhysicalType) ColumnType {
	switch t {
	case decoder.PhysicalBool:
		return ColumnTypeBool
	case decoder.PhysicalInt64:
		return ColumnTypeInt64
	case decoder.PhysicalUint64:
		return ColumnTypeUint64
	case decoder.PhysicalFloat64:
		return ColumnTypeFloat64
	default:
		return ColumnTypeString
	}
}

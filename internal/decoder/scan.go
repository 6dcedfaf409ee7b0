package decoder

import (
	"fmt"
	"math"
)

// LayerInfo describes one layer without its decoded payload.
type LayerInfo struct {
	Name         string
	Extent       uint32
	FeatureCount uint32
	HasID        bool
	Columns      []ColumnInfo
}

// ColumnInfo describes one property column.
type ColumnInfo struct {
	Name     string
	Type     PhysicalType
	Nullable bool
}

// ScanTile walks a tile's headers and returns per-layer metadata without
// decoding any column payload. Integer stream payloads are skipped via their
// declared byte lengths, so a scan is cheap even for large tiles.
//
// The scan validates structure only: encoding tags inside skipped streams are
// not checked, so a tile that scans cleanly may still fail DecodeTile.
func ScanTile(data []byte) ([]LayerInfo, error) {
	cur := NewByteCursor(data)

	layerCount, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount("tile", layerCount, maxLayerCount); err != nil {
		return nil, err
	}

	infos := make([]LayerInfo, layerCount)
	for i := range infos {
		info, err := scanLayer(cur)
		if err != nil {
			return nil, err
		}
		infos[i] = *info
	}
	if n := cur.Remaining(); n > 0 {
		return nil, &ErrCorruptStream{Stream: "tile", Reason: fmt.Sprintf("%d trailing bytes after last layer", n)}
	}
	return infos, nil
}

func scanLayer(cur *ByteCursor) (*LayerInfo, error) {
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

	info := &LayerInfo{Name: name, Extent: uint32(extent), FeatureCount: uint32(featureCount)}

	idFlag, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	switch idFlag {
	case 0:
	case 1:
		info.HasID = true
		if _, err := skipColumn(cur, name+".id", rows); err != nil {
			return nil, err
		}
	default:
		return nil, &ErrCorruptStream{Stream: name, Reason: fmt.Sprintf("unknown id flag %d", idFlag)}
	}

	if err := skipGeometrySection(cur, name); err != nil {
		return nil, err
	}

	propCount, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount(name, propCount, maxPropertyColumns); err != nil {
		return nil, err
	}
	info.Columns = make([]ColumnInfo, propCount)
	for i := range info.Columns {
		propName, err := decodeName(cur, name)
		if err != nil {
			return nil, err
		}
		col, err := skipColumn(cur, name+"."+propName, rows)
		if err != nil {
			return nil, err
		}
		col.Name = propName
		info.Columns[i] = col
	}
	return info, nil
}

// skipColumn advances past one column block, reading only the two header
// bytes and the presence bitmap (needed to size the value payload).
func skipColumn(cur *ByteCursor, stream string, rows int) (ColumnInfo, error) {
	physical, err := cur.Byte()
	if err != nil {
		return ColumnInfo{}, err
	}
	if physical > byte(PhysicalString) {
		return ColumnInfo{}, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("unknown physical type %d", physical)}
	}
	flags, err := cur.Byte()
	if err != nil {
		return ColumnInfo{}, err
	}
	if flags&^columnFlagNullable != 0 {
		return ColumnInfo{}, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("unknown column flags %#x", flags)}
	}
	info := ColumnInfo{Type: PhysicalType(physical), Nullable: flags&columnFlagNullable != 0}

	n := rows
	if info.Nullable {
		_, n, err = decodePresence(cur, rows)
		if err != nil {
			return ColumnInfo{}, err
		}
	}

	switch info.Type {
	case PhysicalBool:
		err = cur.Skip((n + 7) / 8)
	case PhysicalInt64, PhysicalUint64:
		err = skipIntStream(cur)
	case PhysicalFloat64:
		err = cur.Skip(8 * n)
	case PhysicalString:
		err = skipStringColumn(cur, stream)
	}
	if err != nil {
		return ColumnInfo{}, err
	}
	return info, nil
}

// skipIntStream advances past one integer stream using its declared payload
// length. The encoding tag is not validated.
func skipIntStream(cur *ByteCursor) error {
	if _, err := cur.Byte(); err != nil {
		return err
	}
	byteLen, err := cur.Uvarint()
	if err != nil {
		return err
	}
	return cur.Skip(int(byteLen))
}

func skipStringColumn(cur *ByteCursor, stream string) error {
	mode, err := cur.Byte()
	if err != nil {
		return err
	}
	switch mode {
	case stringModePlain:
		return skipStringTable(cur, stream)
	case stringModeDict:
		if _, err := cur.Uvarint(); err != nil {
			return err
		}
		if err := skipStringTable(cur, stream); err != nil {
			return err
		}
		return skipIntStream(cur)
	default:
		return &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("unknown string column mode %d", mode)}
	}
}

func skipStringTable(cur *ByteCursor, stream string) error {
	if err := skipIntStream(cur); err != nil {
		return err
	}
	dataLen, err := cur.Uvarint()
	if err != nil {
		return err
	}
	if err := checkCount(stream, dataLen, maxStringDataBytes); err != nil {
		return err
	}
	return cur.Skip(int(dataLen))
}

func skipGeometrySection(cur *ByteCursor, layer string) error {
	if err := skipIntStream(cur); err != nil { // type stream
		return err
	}
	if _, err := cur.Uvarint(); err != nil { // topology count
		return err
	}
	if err := skipIntStream(cur); err != nil { // topology stream
		return err
	}
	mode, err := cur.Byte()
	if err != nil {
		return err
	}
	switch mode {
	case vertexModeInline:
		if _, err := cur.Uvarint(); err != nil { // pair count
			return err
		}
		return skipIntStream(cur)
	case vertexModeDict:
		if _, err := cur.Uvarint(); err != nil { // dictionary pair count
			return err
		}
		if err := skipIntStream(cur); err != nil {
			return err
		}
		if _, err := cur.Uvarint(); err != nil { // index count
			return err
		}
		return skipIntStream(cur)
	default:
		return &ErrCorruptStream{Stream: layer + ".geometry", Reason: fmt.Sprintf("unknown vertex buffer mode %d", mode)}
	}
}

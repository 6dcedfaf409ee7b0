package mlt

import (
	"reflect"
	"testing"
)

func TestScanMetadata(t *testing.T) {
	meta, err := ScanMetadata(demoTile())
	if err != nil {
		t.Fatalf("ScanMetadata failed: %v", err)
	}
	if len(meta.Layers) != 2 {
		t.Fatalf("Expected 2 layers, got %d", len(meta.Layers))
	}

	roads := meta.Layers[0]
	if roads.Name != "roads" {
		t.Errorf("Expected layer name 'roads', got '%s'", roads.Name)
	}
	if roads.Extent != 4096 {
		t.Errorf("Expected extent 4096, got %d", roads.Extent)
	}
	if roads.FeatureCount != 2 {
		t.Errorf("Expected 2 features, got %d", roads.FeatureCount)
	}
	if !roads.HasID {
		t.Error("Expected roads layer to have an id column")
	}
	wantColumns := []ColumnMetadata{
		{Name: "name", Type: ColumnTypeString, Nullable: false},
		{Name: "lanes", Type: ColumnTypeInt64, Nullable: false},
	}
	if !reflect.DeepEqual(roads.Columns, wantColumns) {
		t.Errorf("Expected columns %+v, got %+v", wantColumns, roads.Columns)
	}

	water := meta.Layers[1]
	if water.HasID {
		t.Error("Expected water layer to have no id column")
	}
	if len(water.Columns) != 1 || water.Columns[0].Type != ColumnTypeFloat64 {
		t.Errorf("Expected one float64 column, got %+v", water.Columns)
	}
}

func TestScanMetadataNullable(t *testing.T) {
	// Nullable int64 column over two rows: row 0 present with value 7,
	// row 1 absent.
	col := []byte{1, 1, 0x01}
	col = append(col, signedStream(7)...)
	layer := buildLayer("pois", 4096, 2, nil,
		pointSection(Coordinate{X: 1, Y: 2}, Coordinate{X: 3, Y: 4}),
		namedColumn{"rank", col})
	data := buildTile(layer)

	meta, err := ScanMetadata(data)
	if err != nil {
		t.Fatalf("ScanMetadata failed: %v", err)
	}
	want := ColumnMetadata{Name: "rank", Type: ColumnTypeInt64, Nullable: true}
	if meta.Layers[0].Columns[0] != want {
		t.Errorf("Expected column %+v, got %+v", want, meta.Layers[0].Columns[0])
	}

	// A null row contributes no property on decode
	tile, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	features := tile.Layers()[0].Features()
	if rank, ok := features[0].Property("rank"); !ok || rank.Int() != 7 {
		t.Errorf("Expected rank 7 on row 0, got %d (ok=%v)", rank.Int(), ok)
	}
	if _, ok := features[1].Property("rank"); ok {
		t.Error("Expected no rank property on the absent row")
	}
	if len(features[1].Properties()) != 0 {
		t.Errorf("Expected no properties on row 1, got %d", len(features[1].Properties()))
	}
}

func TestScanMetadataEnvelope(t *testing.T) {
	meta, err := ScanMetadata(gzipped(demoTile()))
	if err != nil {
		t.Fatalf("ScanMetadata of gzip envelope failed: %v", err)
	}
	if len(meta.Layers) != 2 || meta.Layers[0].Name != "roads" {
		t.Errorf("Expected roads layer from enveloped scan, got %+v", meta.Layers)
	}
}

func TestScanMetadataMatchesDecode(t *testing.T) {
	data := demoTile()
	meta, err := ScanMetadata(data)
	if err != nil {
		t.Fatalf("ScanMetadata failed: %v", err)
	}
	tile, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	layers := tile.Layers()
	if len(meta.Layers) != len(layers) {
		t.Fatalf("Expected %d layers, got %d", len(layers), len(meta.Layers))
	}
	for i := range layers {
		if meta.Layers[i].Name != layers[i].Name() {
			t.Errorf("Layer %d: expected name '%s', got '%s'", i, layers[i].Name(), meta.Layers[i].Name)
		}
		if meta.Layers[i].Extent != layers[i].Extent() {
			t.Errorf("Layer %d: expected extent %d, got %d", i, layers[i].Extent(), meta.Layers[i].Extent)
		}
		if meta.Layers[i].FeatureCount != layers[i].FeatureCount() {
			t.Errorf("Layer %d: expected %d features, got %d", i, layers[i].FeatureCount(), meta.Layers[i].FeatureCount)
		}
	}
}

func TestScanMetadataCorrupt(t *testing.T) {
	data := demoTile()
	if _, err := ScanMetadata(data[:len(data)/2]); err == nil {
		t.Error("Expected error for truncated tile")
	}
	if _, err := ScanMetadata(append(demoTile(), 0x00)); err == nil {
		t.Error("Expected error for trailing bytes")
	}
}

func TestColumnTypeString(t *testing.T) {
	tests := []struct {
		typ  ColumnType
		want string
	}{
		{ColumnTypeBool, "Bool"},
		{ColumnTypeInt64, "Int64"},
		{ColumnTypeUint64, "Uint64"},
		{ColumnTypeFloat64, "Float64"},
		{ColumnTypeString, "String"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Expected '%s', got '%s'", tt.want, got)
		}
	}
}

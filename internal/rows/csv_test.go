package rows

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCSVSource_EVMSheet(t *testing.T) {
	path := writeCSV(t, "Product name,Token Symbol,EVM address\n"+
		"TokenX,TKX,0xabc\n"+
		"TokenY,TKY, 0xdef \n")

	got, err := NewCSVSource(path).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Line != 2 || got[0].Name != "TokenX" || got[0].Symbol != "TKX" || got[0].Address != "0xabc" {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	// Cell whitespace is trimmed
	if got[1].Address != "0xdef" {
		t.Errorf("expected trimmed address 0xdef, got %q", got[1].Address)
	}
}

func TestCSVSource_PriceSheet(t *testing.T) {
	path := writeCSV(t, "Name,BSC Deployed Address,CoinGecko API ID\n"+
		"TokenX,0xabc,tokenx\n")

	got, err := NewCSVSource(path).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Name != "TokenX" || got[0].Address != "0xabc" || got[0].CoingeckoID != "tokenx" {
		t.Errorf("unexpected row: %+v", got[0])
	}
}

func TestCSVSource_EmptyCells(t *testing.T) {
	path := writeCSV(t, "Product name,Token Symbol,Solana Address\n"+
		",,\n"+
		"TokenZ,,\n")

	got, err := NewCSVSource(path).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	// Empty rows are still surfaced; skipping is the processor's decision.
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Name != "" || got[0].Address != "" {
		t.Errorf("expected empty first row, got %+v", got[0])
	}
	if got[1].Name != "TokenZ" || got[1].Address != "" {
		t.Errorf("unexpected second row: %+v", got[1])
	}
}

func TestCSVSource_NoAddressColumn(t *testing.T) {
	path := writeCSV(t, "Product name,Token Symbol\nTokenX,TKX\n")

	_, err := NewCSVSource(path).Rows(context.Background())
	if err == nil {
		t.Fatal("expected error for missing address column")
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).Rows(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

package watchlist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleYAML = `version: 1
tickers:
  - ticker: CLS
    name: Celestica Inc.
    sector: Technology
  - ticker: VRT
    name: Vertiv Holdings
    sector: Industrials
  - ticker: BRK.B
favorites:
  - CLS
`

func writeWatchlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	list, yamlData, err := Load(writeWatchlist(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(list.Tickers) != 3 {
		t.Fatalf("expected 3 tickers, got %d", len(list.Tickers))
	}
	if !reflect.DeepEqual(list.Symbols(), []string{"CLS", "VRT", "BRK.B"}) {
		t.Errorf("Symbols = %v", list.Symbols())
	}
	if !list.IsFavorite("CLS") {
		t.Error("CLS should be a favorite")
	}
	if list.IsFavorite("VRT") {
		t.Error("VRT should not be a favorite")
	}

	entry, ok := list.Entry("VRT")
	if !ok || entry.Sector != "Industrials" {
		t.Errorf("Entry(VRT) = %+v, ok=%v", entry, ok)
	}

	// 해시 생성: 동일 설정 → 동일 해시
	hash, err := Hash(list)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}
	hash2, _ := Hash(list)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}

	t.Logf("watchlist hash: %s", hash)
	t.Logf("yaml size: %d bytes", len(yamlData))
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	// KnownFields(true): 오타는 침묵하지 않고 실패해야 함
	broken := `version: 1
tickers:
  - tickr: CLS
`
	if _, _, err := Load(writeWatchlist(t, broken)); err == nil {
		t.Error("expected error for unknown field 'tickr'")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	list, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if !reflect.DeepEqual(list.Symbols(), []string{"CLS", "NVST", "SMCI"}) {
		t.Errorf("missing file should yield the default trio, got %v", list.Symbols())
	}
}

func TestLoadOrDefaultBrokenFile(t *testing.T) {
	// 존재하지만 깨진 파일은 기본값으로 덮지 않고 에러
	path := writeWatchlist(t, "tickers: [{ticker: \"\"}]\n")
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("expected validation error for empty ticker")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		list    *Watchlist
		wantErr string
	}{
		{
			name:    "empty list",
			list:    &Watchlist{},
			wantErr: "tickers",
		},
		{
			name:    "lowercase symbol",
			list:    &Watchlist{Tickers: []Entry{{Ticker: "cls"}}},
			wantErr: "tickers[0].ticker",
		},
		{
			name:    "duplicate symbol",
			list:    &Watchlist{Tickers: []Entry{{Ticker: "CLS"}, {Ticker: "CLS"}}},
			wantErr: "duplicate",
		},
		{
			name: "favorite not in list",
			list: &Watchlist{
				Tickers:   []Entry{{Ticker: "CLS"}},
				Favorites: []string{"NVDA"},
			},
			wantErr: "favorites[0]",
		},
		{
			name: "valid with dotted class share",
			list: &Watchlist{
				Tickers:   []Entry{{Ticker: "BRK.B"}, {Ticker: "BF-B"}},
				Favorites: []string{"BRK.B"},
			},
			wantErr: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.list)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("built-in default must validate: %v", err)
	}
}

package watchlist

// Watchlist는 추적 대상 종목 유니버스 정의
type Watchlist struct {
	Version   int      `yaml:"version" json:"version"`
	Tickers   []Entry  `yaml:"tickers" json:"tickers"`
	Favorites []string `yaml:"favorites,omitempty" json:"favorites,omitempty"`
}

// Entry is one tracked company.
type Entry struct {
	Ticker string `yaml:"ticker" json:"ticker"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Sector string `yaml:"sector,omitempty" json:"sector,omitempty"`
}

// Default returns the built-in universe used when no watchlist file
// exists: the three names the screener was originally built around.
func Default() *Watchlist {
	return &Watchlist{
		Version: 1,
		Tickers: []Entry{
			{Ticker: "CLS", Name: "Celestica Inc.", Sector: "Technology"},
			{Ticker: "NVST", Name: "Envista Holdings", Sector: "Healthcare"},
			{Ticker: "SMCI", Name: "Super Micro Computer", Sector: "Technology"},
		},
	}
}

// Symbols returns the tickers in file order.
func (w *Watchlist) Symbols() []string {
	symbols := make([]string, 0, len(w.Tickers))
	for _, entry := range w.Tickers {
		symbols = append(symbols, entry.Ticker)
	}
	return symbols
}

// Entry looks up a ticker's metadata.
func (w *Watchlist) Entry(ticker string) (Entry, bool) {
	for _, entry := range w.Tickers {
		if entry.Ticker == ticker {
			return entry, true
		}
	}
	return Entry{}, false
}

// IsFavorite reports whether a ticker is starred.
func (w *Watchlist) IsFavorite(ticker string) bool {
	for _, fav := range w.Favorites {
		if fav == ticker {
			return true
		}
	}
	return false
}

package watchlist

import (
	"fmt"
	"regexp"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// 미국 시장 티커: 대문자로 시작, 최대 10자, BRK.B / BF-B 형태 허용
var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// Validate checks all required constraints.
// 실패 시 error 반환 (프로그램 중단)
func Validate(list *Watchlist) error {
	// === Tickers ===
	if len(list.Tickers) == 0 {
		return ValidationError{"tickers", "must contain at least one entry"}
	}

	seen := make(map[string]bool, len(list.Tickers))
	for i, entry := range list.Tickers {
		if entry.Ticker == "" {
			return ValidationError{fmt.Sprintf("tickers[%d].ticker", i), "required"}
		}
		if !tickerPattern.MatchString(entry.Ticker) {
			return ValidationError{
				Field:   fmt.Sprintf("tickers[%d].ticker", i),
				Message: fmt.Sprintf("'%s' is not a valid symbol (uppercase letters, digits, '.', '-')", entry.Ticker),
			}
		}
		if seen[entry.Ticker] {
			return ValidationError{
				Field:   fmt.Sprintf("tickers[%d].ticker", i),
				Message: fmt.Sprintf("duplicate symbol '%s'", entry.Ticker),
			}
		}
		seen[entry.Ticker] = true
	}

	// === Favorites ===
	// 즐겨찾기는 반드시 목록에 있는 심볼이어야 함
	for i, fav := range list.Favorites {
		if !seen[fav] {
			return ValidationError{
				Field:   fmt.Sprintf("favorites[%d]", i),
				Message: fmt.Sprintf("'%s' is not in the tickers list", fav),
			}
		}
	}

	return nil
}

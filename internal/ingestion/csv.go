package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wonny/breakout/internal/contracts"
)

// csvColumns is the indicator upload header, in template order.
// ⭐ SSOT: 수동 지표 업로드 형식은 여기서만 정의한다.
var csvColumns = []string{
	"ticker",
	"name",
	"revenue_cagr_3y",
	"revenue_acceleration",
	"ebit_margin_trend",
	"fcf_margin",
	"backlog_growth",
	"roic",
	"roic_trend",
	"net_debt_to_ebitda",
	"interest_coverage",
	"asset_turnover_trend",
	"theme_alignment",
	"earnings_revision_trend",
	"insider_activity_score",
	"strategic_investor_presence",
	"peg_ratio",
	"ev_to_ebitda_vs_peers",
	"free_cash_flow_yield",
	"price_momentum",
	"consolidation_score",
	"market_cap",
	"avg_daily_dollar_volume",
	"beta",
	"volatility_3y",
	"drawdown_1y",
}

// templateRow is the ready-to-edit example (Celestica).
var templateRow = []string{
	"CLS", "Celestica Inc.",
	"0.17", "0.05", "0.04", "0.08", "0.32",
	"0.19", "0.05", "1.1", "10", "0.08",
	"0.85", "0.18", "0.55", "0.3",
	"0.9", "-1.5", "0.05", "0.22", "0.6",
	"4200000000", "45000000", "1.1", "0.32", "0.2",
}

// ReadIndicatorsCSV parses a manual indicator upload. The header must
// carry every template column (extra columns are ignored); blank cells
// in the optional columns mean "not reported".
func ReadIndicatorsCSV(r io.Reader) ([]contracts.CompanyIndicators, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv is missing columns: %s", strings.Join(missing, ", "))
	}

	var companies []contracts.CompanyIndicators
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		row := csvRow{index: index, record: record, line: line}
		company, err := row.company()
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

// LoadIndicatorsCSV reads the upload format from a file.
func LoadIndicatorsCSV(path string) ([]contracts.CompanyIndicators, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open indicator csv: %w", err)
	}
	defer file.Close()

	companies, err := ReadIndicatorsCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return companies, nil
}

// WriteIndicatorsTemplate writes the header plus the example row.
func WriteIndicatorsTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	if err := writer.Write(templateRow); err != nil {
		return fmt.Errorf("write template row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

type csvRow struct {
	index  map[string]int
	record []string
	line   int
}

func (r csvRow) company() (contracts.CompanyIndicators, error) {
	ticker := strings.ToUpper(strings.TrimSpace(r.cell("ticker")))
	if ticker == "" {
		return contracts.CompanyIndicators{}, fmt.Errorf("csv line %d: ticker is required", r.line)
	}
	name := strings.TrimSpace(r.cell("name"))
	if name == "" {
		name = ticker
	}

	var parseErr error
	num := func(col string) float64 {
		if parseErr != nil {
			return 0
		}
		value, err := r.float(col)
		if err != nil {
			parseErr = err
		}
		return value
	}
	optional := func(col string) *float64 {
		if parseErr != nil {
			return nil
		}
		value, err := r.optionalFloat(col)
		if err != nil {
			parseErr = err
		}
		return value
	}

	company := contracts.CompanyIndicators{
		Ticker: ticker,
		Name:   name,
		Growth: contracts.GrowthMetrics{
			RevenueCAGR3Y:       num("revenue_cagr_3y"),
			RevenueAcceleration: num("revenue_acceleration"),
			EBITMarginTrend:     num("ebit_margin_trend"),
			FCFMarginTrend:      num("fcf_margin"),
			BacklogGrowth:       optional("backlog_growth"),
		},
		Quality: contracts.QualityMetrics{
			ROIC:               num("roic"),
			ROICTrend:          num("roic_trend"),
			NetDebtToEBITDA:    num("net_debt_to_ebitda"),
			InterestCoverage:   num("interest_coverage"),
			AssetTurnoverTrend: num("asset_turnover_trend"),
		},
		Catalysts: contracts.CatalystMetrics{
			ThemeAlignment:           num("theme_alignment"),
			EarningsRevisionTrend:    num("earnings_revision_trend"),
			InsiderActivityScore:     num("insider_activity_score"),
			StrategicInvestorPresent: optional("strategic_investor_presence"),
		},
		Valuation: contracts.ValuationMetrics{
			PEGRatio:           num("peg_ratio"),
			EVToEBITDAVsPeers:  num("ev_to_ebitda_vs_peers"),
			FreeCashFlowYield:  num("free_cash_flow_yield"),
			PriceMomentum:      num("price_momentum"),
			ConsolidationScore: num("consolidation_score"),
		},
		Risk: contracts.RiskMetrics{
			MarketCap:            num("market_cap"),
			AvgDailyDollarVolume: num("avg_daily_dollar_volume"),
			Beta:                 num("beta"),
			Volatility3Y:         num("volatility_3y"),
			Drawdown1Y:           num("drawdown_1y"),
		},
	}
	if parseErr != nil {
		return contracts.CompanyIndicators{}, parseErr
	}
	return company, nil
}

func (r csvRow) cell(col string) string {
	i := r.index[col]
	if i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r csvRow) float(col string) (float64, error) {
	raw := strings.TrimSpace(r.cell(col))
	if raw == "" {
		return 0, fmt.Errorf("csv line %d: column %q is empty", r.line, col)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("csv line %d: column %q: %w", r.line, col, err)
	}
	return value, nil
}

func (r csvRow) optionalFloat(col string) (*float64, error) {
	raw := strings.TrimSpace(r.cell(col))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("csv line %d: column %q: %w", r.line, col, err)
	}
	return contracts.Float(value), nil
}

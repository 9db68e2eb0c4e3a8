package reports

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

type PartnerShare struct {
	PartnerID  string          `json:"partner_id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	AmountARS  decimal.Decimal `json:"amount_ars"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
}

type Distribution struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Resultado Pair           `json:"resultado"`
	Shares    []PartnerShare `json:"shares"`
	Warning   string         `json:"warning,omitempty"`
}

// Distribution previews how the month's net result splits across partners by
// their fixed profit percentages.
func (s *PositionService) Distribution(ctx context.Context, year int, month time.Month, scopeID *string) (Distribution, error) {
	position, err := s.Monthly(ctx, year, month, scopeID)
	if err != nil {
		return Distribution{}, err
	}
	partners, err := s.partners.List(ctx)
	if err != nil {
		return Distribution{}, err
	}
	shares, warning := DistributeResult(position.Resultado, partners)
	return Distribution{
		Year:      year,
		Month:     int(month),
		Resultado: position.Resultado,
		Shares:    shares,
		Warning:   warning,
	}, nil
}

// DistributeResult applies each partner's percentage to the net result.
// Percentages that do not sum to 100 produce a warning, never an error: the
// unassigned remainder may be a deliberate partial distribution.
func DistributeResult(resultado Pair, partners []models.Partner) ([]PartnerShare, string) {
	shares := make([]PartnerShare, 0, len(partners))
	totalPct := decimal.Zero
	for _, partner := range partners {
		pct := partner.ProfitPercentage
		totalPct = totalPct.Add(pct)
		shares = append(shares, PartnerShare{
			PartnerID:  partner.ID,
			Name:       partner.Name,
			Percentage: pct,
			AmountARS:  resultado.ARS.Mul(pct).Div(oneHundred),
			AmountUSD:  resultado.USD.Mul(pct).Div(oneHundred),
		})
	}
	warning := ""
	if len(partners) > 0 && !totalPct.Equal(oneHundred) {
		warning = fmt.Sprintf("partner percentages sum to %s%%, leaving %s%% unassigned", totalPct, oneHundred.Sub(totalPct))
	}
	return shares, warning
}

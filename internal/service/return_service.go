package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/pricing"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

// ReturnService computes historical returns for an equity position,
// adjusting for the corporate actions that occurred in the window.
type ReturnService struct {
	actionRepo *repository.ActionRepository
	resolver   *pricing.Resolver
}

// NewReturnService creates a new ReturnService with the provided dependencies.
func NewReturnService(actionRepo *repository.ActionRepository, resolver *pricing.Resolver) *ReturnService {
	return &ReturnService{
		actionRepo: actionRepo,
		resolver:   resolver,
	}
}

// Compute calculates the return on holding initialShares of symbol from
// startDate to endDate.
//
// Endpoint prices come from the provider chain; ErrPriceUnavailable
// propagates unmodified if either cannot be resolved. Corporate actions with
// an ex-date inside (startDate, endDate] are applied in ex-date order:
// splits and bonuses multiply the share count, dividends accrue cash against
// the share count held at that point in the sequence, so a bonus earlier in
// the window raises the cash from a later dividend. Actions missing their
// required field are skipped without effect.
//
// Price gain is measured against the final share count, the position as it
// exists at the end. The percentage figures are relative to the starting
// price and initial value.
func (s *ReturnService) Compute(ctx context.Context, symbol string, startDate, endDate time.Time, initialShares decimal.Decimal) (model.ReturnResult, error) {
	if startDate.After(endDate) {
		return model.ReturnResult{}, fmt.Errorf("%w: %s is after %s",
			apperrors.ErrInvalidRange, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	startQuote, err := s.resolver.Resolve(ctx, symbol, startDate)
	if err != nil {
		return model.ReturnResult{}, err
	}
	endQuote, err := s.resolver.Resolve(ctx, symbol, endDate)
	if err != nil {
		return model.ReturnResult{}, err
	}

	shares := initialShares
	cash := decimal.Zero

	corporateActions, err := s.actionRepo.FindActions(symbol, startDate, endDate)
	if err != nil {
		return model.ReturnResult{}, err
	}

	actionLog := []model.ActionLogEntry{}

	for _, action := range corporateActions {
		switch {
		case (action.Type == model.ActionSplit || action.Type == model.ActionBonus) && action.Factor != nil:
			sharesBefore := shares
			shares = shares.Mul(*action.Factor)

			sharesAfter := shares
			actionLog = append(actionLog, model.ActionLogEntry{
				Date:         action.ExDate,
				Type:         action.Type,
				Factor:       action.Factor,
				SharesBefore: &sharesBefore,
				SharesAfter:  &sharesAfter,
			})

		case action.Type == model.ActionDividend && action.CashValue != nil:
			dividendCash := shares.Mul(*action.CashValue)
			cash = cash.Add(dividendCash)

			totalCash := cash
			actionLog = append(actionLog, model.ActionLogEntry{
				Date:             action.ExDate,
				Type:             action.Type,
				DividendPerShare: action.CashValue,
				CashReceived:     &dividendCash,
				TotalCash:        &totalCash,
			})
		}
		// Actions whose required field is missing are skipped.
	}

	startPrice := startQuote.Close
	endPrice := endQuote.Close

	initialValue := initialShares.Mul(startPrice)
	priceDelta := endPrice.Sub(startPrice)
	priceGain := priceDelta.Mul(shares)
	priceGainPct := priceDelta.Div(startPrice).Mul(oneHundred)
	dividendGain := cash
	totalGain := priceGain.Add(dividendGain)
	totalGainPct := totalGain.Div(initialValue).Mul(oneHundred)
	finalValue := initialValue.Add(totalGain)

	return model.ReturnResult{
		Symbol:           symbol,
		From:             startDate,
		To:               endDate,
		InitialShares:    initialShares,
		FinalShares:      shares,
		StartPrice:       startPrice,
		EndPrice:         endPrice,
		StartSource:      startQuote.Source,
		EndSource:        endQuote.Source,
		InitialValue:     initialValue,
		PriceGain:        priceGain,
		PriceGainPct:     priceGainPct,
		DividendGain:     dividendGain,
		TotalGain:        totalGain,
		TotalGainPct:     totalGainPct,
		FinalValue:       finalValue,
		CorporateActions: actionLog,
	}, nil
}

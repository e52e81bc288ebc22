// Package actions parses free-text NSE corporate action disclosures into
// normalized action records. Disclosure text is noisy; parsing is best-effort
// and fragments that cannot be understood yield no record rather than an
// error. Callers are expected to log drops for auditability.
package actions

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
)

var (
	// A single PURPOSE field may encode several simultaneous actions,
	// e.g. "Div 30%/Bonus 1:1" or "Dividend Rs 20 AND Bonus 1:1".
	purposeDelimiter = regexp.MustCompile(`(?i)[/;&]| AND `)

	decimalToken = regexp.MustCompile(`\d+\.?\d*`)
	integerToken = regexp.MustCompile(`\d+`)
)

var oneHundred = decimal.NewFromInt(100)

// SplitPurpose splits a disclosure string into individual action fragments.
// Fragments are trimmed and empty ones discarded.
func SplitPurpose(purpose string) []string {
	parts := purposeDelimiter.Split(purpose, -1)
	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fragments = append(fragments, p)
		}
	}
	return fragments
}

// Classify determines the action type of a fragment by case-insensitive
// substring match. Dividend is checked before bonus and split so that
// combined phrasings resolve the same way across re-parses.
func Classify(fragment string) model.ActionType {
	t := strings.ToLower(fragment)
	switch {
	case strings.Contains(t, "div"):
		return model.ActionDividend
	case strings.Contains(t, "bonus"):
		return model.ActionBonus
	case strings.Contains(t, "split"):
		return model.ActionSplit
	default:
		return model.ActionOther
	}
}

// ParseDividend extracts the cash-per-share amount from a dividend fragment.
// A fragment containing "%" is a percentage of face value (older NSE data):
// "Div 30%" with face value 10 yields 3. Otherwise the first numeric token is
// a direct cash amount: "Dividend Rs 20" yields 20. Returns false when no
// numeric token is present.
func ParseDividend(fragment string, faceValue decimal.Decimal) (decimal.Decimal, bool) {
	num := decimalToken.FindString(fragment)
	if num == "" {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if strings.Contains(fragment, "%") {
		return amount.Div(oneHundred).Mul(faceValue), true
	}
	return amount, true
}

// ParseBonus extracts the bonus ratio a:b from a fragment and returns the
// share multiplier (a+b)/a. "Bonus 1:1" yields 2, "Bonus 2:1" yields 1.5.
// Returns false when fewer than two integers are present.
func ParseBonus(fragment string) (decimal.Decimal, bool) {
	nums := integerToken.FindAllString(fragment, 2)
	if len(nums) < 2 {
		return decimal.Decimal{}, false
	}
	a, errA := decimal.NewFromString(nums[0])
	b, errB := decimal.NewFromString(nums[1])
	if errA != nil || errB != nil || a.IsZero() {
		return decimal.Decimal{}, false
	}
	return a.Add(b).Div(a), true
}

// ParseSplit extracts the old and new face values from a split fragment and
// returns the share multiplier old/new. "Split from Rs 10 to Rs 5" yields 2.
// Returns false when fewer than two integers are present or the new face
// value is zero.
func ParseSplit(fragment string) (decimal.Decimal, bool) {
	nums := integerToken.FindAllString(fragment, 2)
	if len(nums) < 2 {
		return decimal.Decimal{}, false
	}
	oldFace, errOld := decimal.NewFromString(nums[0])
	newFace, errNew := decimal.NewFromString(nums[1])
	if errOld != nil || errNew != nil || newFace.IsZero() {
		return decimal.Decimal{}, false
	}
	return oldFace.Div(newFace), true
}

// ParseFragment classifies a single fragment and extracts its numeric value.
// Returns the action type together with a factor (SPLIT/BONUS) or cash value
// (DIVIDEND); ok is false when the fragment is OTHER or its value could not
// be extracted.
func ParseFragment(fragment string, faceValue decimal.Decimal) (actionType model.ActionType, factor, cashValue *decimal.Decimal, ok bool) {
	actionType = Classify(fragment)
	switch actionType {
	case model.ActionDividend:
		if v, found := ParseDividend(fragment, faceValue); found {
			return actionType, nil, &v, true
		}
	case model.ActionBonus:
		if v, found := ParseBonus(fragment); found {
			return actionType, &v, nil, true
		}
	case model.ActionSplit:
		if v, found := ParseSplit(fragment); found {
			return actionType, &v, nil, true
		}
	}
	return actionType, nil, nil, false
}

package value

import "strings"

// TaxType is the tax regime of an item. The upstream never rejects an absent
// regime, so parsing defaults to taxed.
type TaxType string

const (
	TaxTypeTaxed  TaxType = "taxed"
	TaxTypeExempt TaxType = "exempt"
)

func (t TaxType) String() string {
	return string(t)
}

func (t TaxType) Valid() bool {
	return t == TaxTypeTaxed || t == TaxTypeExempt
}

// ParseTaxType coerces a raw tax regime string. Empty input means taxed;
// anything else must match one of the known regimes.
func ParseTaxType(raw string) (TaxType, bool) {
	switch TaxType(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return TaxTypeTaxed, true
	case TaxTypeTaxed:
		return TaxTypeTaxed, true
	case TaxTypeExempt:
		return TaxTypeExempt, true
	default:
		return "", false
	}
}

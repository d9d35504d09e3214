package finvest

// Summary is the at-a-glance overview of the whole portfolio. It is
// derived, not stored: callers recompute it from the full asset
// collection on every read. The collection is small, so a full pass is
// the correct strategy; nothing is cached or incrementally patched.
type Summary struct {
	TotalValue         Money   `json:"total_value"`
	TotalInvested      Money   `json:"total_invested"`
	Profitability      Percent `json:"profitability"`
	ProfitabilityValue Money   `json:"profitability_value"`
}

// NewSummary computes the portfolio summary over assets. Profitability
// is 0 when nothing was invested.
func NewSummary(assets []Asset) *Summary {
	var invested, value Money
	for _, a := range assets {
		invested = invested.Add(a.AveragePrice.Mul(a.Quantity))
		value = value.Add(a.CurrentPrice.Mul(a.Quantity))
	}
	gain := value.Sub(invested)
	return &Summary{
		TotalValue:         value,
		TotalInvested:      invested,
		Profitability:      gain.PercentOf(invested),
		ProfitabilityValue: gain,
	}
}

// AllocationEntry pairs an asset type with the summed market value of
// the assets of that type.
type AllocationEntry struct {
	Type  AssetType `json:"type"`
	Value Money     `json:"value"`
}

// Allocation sums market value by asset type. Only types present in
// the portfolio produce an entry; entries follow the declaration order
// of AssetTypes so the output is stable across reads.
func Allocation(assets []Asset) []AllocationEntry {
	byType := make(map[AssetType]Money, len(AssetTypes))
	for _, a := range assets {
		byType[a.Type] = byType[a.Type].Add(a.CurrentPrice.Mul(a.Quantity))
	}
	entries := make([]AllocationEntry, 0, len(byType))
	for _, t := range AssetTypes {
		if v, ok := byType[t]; ok {
			entries = append(entries, AllocationEntry{Type: t, Value: v})
		}
	}
	return entries
}

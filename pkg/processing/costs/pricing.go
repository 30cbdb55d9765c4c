package costs

// PricingEntry holds per-million-token pricing for one model.
type PricingEntry struct {
	// InputPerMTok is USD per million input (prompt) tokens.
	InputPerMTok float64

	// OutputPerMTok is USD per million output (completion) tokens.
	OutputPerMTok float64
}

// defaultModel is the pricing tier used when a model has no row of its
// own: the cheapest general-purpose tier.
const defaultModel = "gpt-4o-mini"

// defaultPricingTable is the built-in pricing table, USD per million
// tokens. It seeds the immutable table when no overrides are configured.
var defaultPricingTable = map[string]PricingEntry{
	"gpt-4o-mini":     {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"gpt-4o":          {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"gpt-4-turbo":     {InputPerMTok: 10.00, OutputPerMTok: 30.00},
	"gpt-3.5-turbo":   {InputPerMTok: 0.50, OutputPerMTok: 1.50},
	"claude-3-opus":   {InputPerMTok: 15.00, OutputPerMTok: 75.00},
	"claude-3-sonnet": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-3-haiku":  {InputPerMTok: 0.25, OutputPerMTok: 1.25},
}

// PricingTable is an immutable model → pricing mapping with a designated
// default entry. It is shared process-wide as read-only state; no
// component mutates it after construction.
type PricingTable struct {
	entries      map[string]PricingEntry
	defaultEntry PricingEntry
}

// NewPricingTable builds a table from the given entries and default. The
// input map is copied so later mutation by the caller cannot leak in.
func NewPricingTable(entries map[string]PricingEntry, defaultEntry PricingEntry) *PricingTable {
	copied := make(map[string]PricingEntry, len(entries))
	for model, entry := range entries {
		copied[model] = entry
	}
	return &PricingTable{entries: copied, defaultEntry: defaultEntry}
}

// DefaultPricingTable returns the built-in table with gpt-4o-mini as the
// default tier.
func DefaultPricingTable() *PricingTable {
	return NewPricingTable(defaultPricingTable, defaultPricingTable[defaultModel])
}

// Lookup returns the pricing entry for model by exact identifier match,
// falling back to the default entry when the model has no row.
func (t *PricingTable) Lookup(model string) PricingEntry {
	if entry, ok := t.entries[model]; ok {
		return entry
	}
	return t.defaultEntry
}

// Default returns the designated default entry.
func (t *PricingTable) Default() PricingEntry {
	return t.defaultEntry
}

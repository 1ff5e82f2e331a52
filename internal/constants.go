package maestrotop

// Time columns present in the ross and model datasets.
const (
	DefaultTimeKey = "virtual_time"
	AltTimeKey     = "real_time"
)

// Identifier and time columns are not meaningful as dependent variables, so
// the views exclude them from their axis options.
var identifierColumns = map[string]bool{
	"PE_ID":        true,
	"KP_ID":        true,
	"LP_ID":        true,
	"pe_id":        true,
	"kp_id":        true,
	"lp_id":        true,
	DefaultTimeKey: true,
	AltTimeKey:     true,
	"flag":         true,
	"sample_size":  true,
}

// axisExclusions returns a fresh exclusion set so views can't share mutable
// state.
func axisExclusions() map[string]bool {
	out := make(map[string]bool, len(identifierColumns))
	for k, v := range identifierColumns {
		out[k] = v
	}
	return out
}

// eventColumns is the known field order of the event trace dataset, which
// the backend serves without a columns list.
var eventColumns = []string{
	"source_lp",
	"dest_lp",
	"virtual_send",
	"virtual_receive",
	"real_times",
	"event_type",
}

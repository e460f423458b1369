package rain

// Tier is a discrete brightness bucket. Higher is brighter.
type Tier uint8

const (
	TierDim Tier = iota
	TierMedium
	TierBright
	TierLead

	tierCount = 4
)

// TierFor maps a brightness sample in [0,1) onto a tier using half-open
// intervals: [0,0.5) dim, [0.5,0.8) medium, [0.8,0.95) bright, [0.95,1) lead.
func TierFor(v float64) Tier {
	switch {
	case v >= 0.95:
		return TierLead
	case v >= 0.80:
		return TierBright
	case v >= 0.50:
		return TierMedium
	default:
		return TierDim
	}
}

func (t Tier) String() string {
	switch t {
	case TierDim:
		return "dim"
	case TierMedium:
		return "medium"
	case TierBright:
		return "bright"
	case TierLead:
		return "lead"
	default:
		return "unknown"
	}
}

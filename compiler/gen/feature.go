package gen

// Stage of a feature's maturity.
type Stage int

const (
	// Experimental features may change or be removed.
	Experimental Stage = iota
	// Alpha features are functional but their surface may still move.
	Alpha
	// Stable features are part of the supported surface.
	Stable
)

// Feature is an optional generation capability toggled per run.
type Feature struct {
	// Name used to enable the feature from configuration.
	Name string
	// Stage of maturity.
	Stage Stage
	// Default reports whether the feature is on unless disabled.
	Default bool
	// Description of what the feature generates.
	Description string
}

var (
	// FeatureCallTracking emits a call counter per faked method,
	// incremented before the behavior slot is invoked.
	FeatureCallTracking = Feature{
		Name:        "calltracking",
		Stage:       Stable,
		Default:     false,
		Description: "CallTracking emits an invocation counter per generated method",
	}

	// FeatureVolatileSlots marks behavior slots @Volatile so fakes can
	// be reconfigured across threads within one test.
	FeatureVolatileSlots = Feature{
		Name:        "volatile",
		Stage:       Alpha,
		Default:     false,
		Description: "VolatileSlots generates instance-scoped, thread-visible behavior slots",
	}

	// FeatureOverlapWarning reports a warning when two default-value
	// strategies match the same type and chain order decides silently.
	FeatureOverlapWarning = Feature{
		Name:        "overlapwarn",
		Stage:       Experimental,
		Default:     false,
		Description: "OverlapWarning surfaces ambiguous default-value strategy matches",
	}
)

// AllFeatures holds every known feature.
var AllFeatures = []Feature{
	FeatureCallTracking,
	FeatureVolatileSlots,
	FeatureOverlapWarning,
}

func featureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

package policy

// Setting is a tri-state capability switch used for per-call overrides.
type Setting int

const (
	Unset Setting = iota
	Enabled
	Disabled
)

// SettingOf converts a bool into Enabled or Disabled.
func SettingOf(enabled bool) Setting {
	if enabled {
		return Enabled
	}
	return Disabled
}

// Resolve picks the effective value of a capability.
//
// Precedence is explicit override, then the entity setting (nil when the
// entity never configured it), then the global default.
func Resolve(override Setting, entity *bool, global bool) bool {
	if override != Unset {
		return override == Enabled
	}
	if entity != nil {
		return *entity
	}
	return global
}

// Overrides carries per-call capability overrides.
type Overrides struct {
	Filtering Setting
	Sorting   Setting
	Paging    Setting
}

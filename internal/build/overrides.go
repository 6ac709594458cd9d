package build

import "strings"

// OverrideKind classifies a conversation reply for a single field.
type OverrideKind int

const (
	// OverrideKeep leaves the field at its current value ("default").
	OverrideKeep OverrideKind = iota
	// OverrideClear resets an optional field to empty ("skip").
	OverrideClear
	// OverrideSet replaces the field with the supplied value.
	OverrideSet
)

// Override is the parsed form of one step reply.
type Override struct {
	Kind  OverrideKind
	Value string
}

// ParseReply interprets a raw message for a flow step. The keep and
// clear tokens are matched case-insensitively after trimming; "skip" on
// a required field is taken literally as the new value.
func ParseReply(text string, optional bool) Override {
	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(trimmed) {
	case "default":
		return Override{Kind: OverrideKeep}
	case "skip", "":
		if optional {
			return Override{Kind: OverrideClear}
		}
		if trimmed == "" {
			return Override{Kind: OverrideKeep}
		}
	}
	return Override{Kind: OverrideSet, Value: trimmed}
}

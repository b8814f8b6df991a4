package windows

import (
	"strconv"
	"strings"
)

const (
	MainPrefix  = "main_"
	OtherPrefix = "other_"
)

type LabelKind int

const (
	LabelPrimary LabelKind = iota
	LabelSecondary
)

// Label identifies a window. Primary labels are allocated from the registry,
// secondary labels carry a caller supplied name.
type Label struct {
	kind  LabelKind
	index int
	name  string
}

func Primary(index int) Label {
	return Label{kind: LabelPrimary, index: index}
}

func Secondary(name string) Label {
	return Label{kind: LabelSecondary, name: name}
}

// FirstPrimary is the "home" window whose geometry is persisted.
var FirstPrimary = Primary(0)

func (l Label) Kind() LabelKind { return l.kind }

func (l Label) String() string {
	if l.kind == LabelSecondary {
		return OtherPrefix + l.name
	}
	return MainPrefix + strconv.Itoa(l.index)
}

// ParseLabel recovers a Label from its rendered form. Strings that carry
// neither prefix are rejected.
func ParseLabel(s string) (Label, bool) {
	switch {
	case strings.HasPrefix(s, OtherPrefix):
		return Secondary(strings.TrimPrefix(s, OtherPrefix)), true
	case strings.HasPrefix(s, MainPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(s, MainPrefix))
		if err != nil || n < 0 {
			return Label{}, false
		}
		return Primary(n), true
	}
	return Label{}, false
}

// AllocatePrimary returns the lowest Primary(n) not present in existing.
func AllocatePrimary(existing map[string]struct{}) Label {
	for n := 0; ; n++ {
		l := Primary(n)
		if _, taken := existing[l.String()]; !taken {
			return l
		}
	}
}

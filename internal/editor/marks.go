package editor

import (
	"fmt"
	"strings"
)

// Marks is a set of text styles.
type Marks uint8

// Supported marks.
const (
	Bold Marks = 1 << iota
	Italic
	Code
)

// markNames is in canonical encoding order.
var markNames = []struct {
	mark Marks
	name string
}{
	{Bold, "bold"},
	{Italic, "italic"},
	{Code, "code"},
}

// Has reports whether every mark in m is set.
func (s Marks) Has(m Marks) bool { return s&m == m }

// Names returns the names of the set marks in canonical order.
func (s Marks) Names() []string {
	var names []string
	for _, mn := range markNames {
		if s.Has(mn.mark) {
			names = append(names, mn.name)
		}
	}
	return names
}

func (s Marks) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), "+")
}

// ParseMark returns the mark with the given name.
func ParseMark(name string) (Marks, error) {
	for _, mn := range markNames {
		if mn.name == name {
			return mn.mark, nil
		}
	}
	return 0, fmt.Errorf("unsupported mark %q", name)
}

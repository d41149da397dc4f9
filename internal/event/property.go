package event

import (
	"fmt"
	"strings"
	"time"
)

// Property identifies an editable event field.
type Property string

const (
	PropertySubject     Property = "subject"
	PropertyStart       Property = "start"
	PropertyEnd         Property = "end"
	PropertyDescription Property = "description"
	PropertyLocation    Property = "location"
	PropertyVisibility  Property = "visibility"
)

// ParseProperty recognizes the property names accepted by edit commands.
func ParseProperty(s string) (Property, error) {
	p := Property(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PropertySubject, PropertyStart, PropertyEnd,
		PropertyDescription, PropertyLocation, PropertyVisibility:
		return p, nil
	}
	return "", fmt.Errorf("unknown event property %q", s)
}

// TimeValued reports whether the property carries a timestamp value
// rather than text. Time-valued bulk edits are all-or-nothing.
func (p Property) TimeValued() bool {
	return p == PropertyStart || p == PropertyEnd
}

// Change describes one property edit. Text carries the new value for text
// properties; When carries it for start and end.
type Change struct {
	Property Property
	Text     string
	When     time.Time
}

// Apply returns a copy of e with the change applied. The copy is validated
// the same way constructors validate, so a change that would break the
// start/end ordering or blank the subject is rejected with e untouched.
func (e Event) Apply(c Change) (Event, error) {
	switch c.Property {
	case PropertySubject:
		return e.WithSubject(c.Text)
	case PropertyStart:
		return e.WithStart(c.When)
	case PropertyEnd:
		return e.WithEnd(c.When)
	case PropertyDescription:
		return e.WithDescription(c.Text), nil
	case PropertyLocation:
		return e.WithLocation(c.Text), nil
	case PropertyVisibility:
		v, err := ParseVisibility(c.Text)
		if err != nil {
			return Event{}, err
		}
		return e.WithVisibility(v), nil
	}
	return Event{}, fmt.Errorf("unknown event property %q", c.Property)
}

package window

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"region-capture/src/geometry"
)

// ErrBackendUnavailable is returned when no supported compositor is running.
var ErrBackendUnavailable = errors.New("compositor backend unavailable")

// Descriptor describes one toplevel window as reported by the compositor.
type Descriptor struct {
	Rect         geometry.Rect
	Address      string
	Class        string
	Title        string
	InitialClass string
	InitialTitle string
	Workspace    string
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %q (%s) @ %v", d.Address, d.Title, d.Class, d.Rect)
}

// Backend exposes the read-only window queries a compositor supports.
type Backend interface {
	// Name returns the backend name for logging (e.g. "hyprland").
	Name() string
	// Windows returns all visible windows, topmost first.
	Windows() ([]Descriptor, error)
	// FocusedWindow returns the currently focused window, if any.
	FocusedWindow() (*Descriptor, error)
	// MousePosition returns the cursor position in global coordinates.
	MousePosition() (geometry.Point, error)
}

// List is the window snapshot taken once at session start.
type List []Descriptor

// FindByPosition returns the first window whose rect contains p.
func (l List) FindByPosition(p geometry.Point) *Descriptor {
	for i := range l {
		r := l[i].Rect
		if p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height {
			d := l[i]
			return &d
		}
	}
	return nil
}

// FindBySearchParam returns the first window matched by param.
func (l List) FindBySearchParam(param SearchParam) *Descriptor {
	for i := range l {
		if param.Matches(l[i]) {
			d := l[i]
			return &d
		}
	}
	return nil
}

// Field selects which descriptor attribute a SearchParam matches against.
type Field int

const (
	FieldAny Field = iota
	FieldClass
	FieldTitle
	FieldInitialClass
	FieldInitialTitle
)

var fieldNames = map[string]Field{
	"class":        FieldClass,
	"title":        FieldTitle,
	"initialclass": FieldInitialClass,
	"initialtitle": FieldInitialTitle,
}

// SearchParam matches windows by a regular expression over one field.
// The expression must match the whole field value.
type SearchParam struct {
	Field   Field
	Pattern *regexp.Regexp
}

// ParseSearchParam parses values like "class=Alacritty" or
// "title=.*Visual Studio Code.*". A value without a known field prefix
// matches either class or title.
func ParseSearchParam(value string) (SearchParam, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return SearchParam{}, errors.New("empty window search pattern")
	}

	field := FieldAny
	expr := value
	if key, rest, ok := strings.Cut(value, "="); ok {
		if f, known := fieldNames[strings.ToLower(strings.TrimSpace(key))]; known {
			field = f
			expr = rest
		}
	}

	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return SearchParam{}, fmt.Errorf("invalid window search pattern %q: %w", expr, err)
	}

	return SearchParam{Field: field, Pattern: re}, nil
}

// Matches reports whether d satisfies the search parameter.
func (s SearchParam) Matches(d Descriptor) bool {
	if s.Pattern == nil {
		return false
	}
	switch s.Field {
	case FieldClass:
		return s.Pattern.MatchString(d.Class)
	case FieldTitle:
		return s.Pattern.MatchString(d.Title)
	case FieldInitialClass:
		return s.Pattern.MatchString(d.InitialClass)
	case FieldInitialTitle:
		return s.Pattern.MatchString(d.InitialTitle)
	default:
		return s.Pattern.MatchString(d.Class) || s.Pattern.MatchString(d.Title)
	}
}

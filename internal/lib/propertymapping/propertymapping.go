package propertymapping

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// OptionDateFormat is the Go layout used to parse date properties.
	OptionDateFormat = "dateFormat"

	DefaultDateFormat = time.RFC3339
)

var ErrEmptyValue = errors.New("empty value")

// Configuration holds conversion options of an argument and, nested,
// of its properties.
type Configuration struct {
	options    map[string]string
	properties map[string]*Configuration
}

func New() *Configuration {
	return &Configuration{
		options:    make(map[string]string),
		properties: make(map[string]*Configuration),
	}
}

// ForProperty returns the configuration of a property, creating it on first use.
func (c *Configuration) ForProperty(name string) *Configuration {
	if p, ok := c.properties[name]; ok {
		return p
	}

	p := New()
	c.properties[name] = p

	return p
}

func (c *Configuration) SetOption(key, value string) *Configuration {
	c.options[key] = value

	return c
}

func (c *Configuration) Option(key string) (string, bool) {
	v, ok := c.options[key]

	return v, ok
}

// DateFormat returns the date layout configured for property.
func (c *Configuration) DateFormat(property string) string {
	if p, ok := c.properties[property]; ok {
		if f, ok := p.Option(OptionDateFormat); ok && f != "" {
			return f
		}
	}

	return DefaultDateFormat
}

// ConvertDate parses value using the date format of property. Layouts
// without a zone are read in loc.
func (c *Configuration) ConvertDate(property, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s: %w", property, ErrEmptyValue)
	}
	if loc == nil {
		loc = time.Local
	}

	layout := c.DateFormat(property)

	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q does not match format %q", property, value, layout)
	}

	return t, nil
}

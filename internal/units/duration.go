package units

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDurationFormat = errors.New(
	"not a valid duration. Must be parseable by time.ParseDuration",
)

type Duration struct {
	Duration time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	val, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDurationFormat, value.Value)
	}

	d.Duration = val
	return nil
}

func (d Duration) String() string {
	return d.Duration.String()
}

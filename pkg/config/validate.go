package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the loaded configuration against its struct tags and
// returns a single descriptive error for the first problem found.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrors {
				return fmt.Errorf("config field %s failed validation %q", e.Namespace(), e.Tag())
			}
		}
		return err
	}
	return nil
}

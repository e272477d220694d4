package config

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// ValidateConfig validates the configuration after defaults have been applied.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateOutput(); err != nil {
		return err
	}
	if err := cv.validateLogging(); err != nil {
		return err
	}
	if err := cv.validateSchedule(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validateContent() error {
	if strings.TrimSpace(cv.config.Content.Dir) == "" {
		return errors.New("content.dir must not be empty")
	}
	for _, ext := range cv.config.Content.Extensions {
		if ext == "" || ext == "." {
			return fmt.Errorf("content.extensions contains an empty extension")
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	if _, err := site.ParseFormat(string(cv.config.Output.Format)); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if strings.ContainsAny(cv.config.Output.Filename, `/\`) {
		return fmt.Errorf("output.filename must be a bare file name: %s", cv.config.Output.Filename)
	}
	return nil
}

func (cv *configurationValidator) validateLogging() error {
	if _, err := logLevelNormalizer.NormalizeWithError(string(cv.config.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := logFormatNormalizer.NormalizeWithError(string(cv.config.Logging.Format)); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	return nil
}

func (cv *configurationValidator) validateSchedule() error {
	d, err := cv.config.Schedule.Interval()
	if err != nil {
		return fmt.Errorf("schedule.check_interval: %w", err)
	}
	if cv.config.Schedule.CheckInterval != "" && d <= 0 {
		return fmt.Errorf("schedule.check_interval must be positive: %s", cv.config.Schedule.CheckInterval)
	}
	return nil
}

package config

import "strings"

func (c *Config) normalize() error {
	expanded, err := ExpandPath(c.Paths.CacheDir)
	if err != nil {
		return err
	}
	c.Paths.CacheDir = expanded

	c.Probe.FFprobeBinary = strings.TrimSpace(c.Probe.FFprobeBinary)
	if c.Probe.FFprobeBinary == "" {
		c.Probe.FFprobeBinary = defaultFFprobeBinary
	}

	c.Output.Manifest = strings.TrimSpace(c.Output.Manifest)
	if c.Output.Manifest == "" {
		c.Output.Manifest = defaultManifestPath
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

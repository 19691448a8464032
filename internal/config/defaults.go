package config

const (
	defaultCacheDir      = "~/.cache/speechset"
	defaultFFprobeBinary = "ffprobe"
	defaultCacheEnabled  = true
	defaultManifestPath  = "metadata.jsonl"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
		},
		Probe: Probe{
			FFprobeBinary: defaultFFprobeBinary,
			CacheEnabled:  defaultCacheEnabled,
		},
		Output: Output{
			Manifest: defaultManifestPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultMEIDir     = "~/.local/share/mensural2mei/mei"
	defaultHumdrumDir = "~/.local/share/mensural2mei/humdrum"
	defaultLogDir     = "~/.local/share/mensural2mei/logs"
	defaultCatalogDir = "~/.local/share/mensural2mei"

	defaultGeneratorVersion = "1.0.0"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MEIDir:     defaultMEIDir,
			HumdrumDir: defaultHumdrumDir,
			LogDir:     defaultLogDir,
			CatalogDir: defaultCatalogDir,
		},
		Conversion: Conversion{
			Humdrum:          true,
			GeneratorVersion: defaultGeneratorVersion,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultDataDir      = "~/.local/share/lampyr"
	defaultLogDir       = "~/.local/share/lampyr/logs"
	defaultMarker       = "DSCF"
	defaultExtension    = ".JPG"
	defaultChannel      = "red"
	defaultBannerHeight = 140
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	defaultMinMaxBrightness = 50
	defaultMaxAvgBrightness = 8
	defaultMaxStdMeanRatio  = 0.25

	defaultKurtosisMinimum = 12
	defaultMaxBlobCount    = 4
	defaultMaxBlobArea     = 300

	defaultDedupDistance = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Scan: Scan{
			Marker:       defaultMarker,
			Extension:    defaultExtension,
			Channel:      defaultChannel,
			BannerHeight: defaultBannerHeight,
		},
		Thresholds: Thresholds{
			MinMaxBrightness: defaultMinMaxBrightness,
			MaxAvgBrightness: defaultMaxAvgBrightness,
			MaxStdMeanRatio:  defaultMaxStdMeanRatio,
		},
		Blob: Blob{
			KurtosisMinimum: defaultKurtosisMinimum,
			MaxBlobCount:    defaultMaxBlobCount,
			MaxBlobArea:     defaultMaxBlobArea,
		},
		Dedup: Dedup{
			Distance: defaultDedupDistance,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

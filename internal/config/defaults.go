package config

const (
	defaultStagingDir = "~/.local/share/subscan/staging"
	defaultOutputDir  = "~/subtitles"
	defaultLogDir     = "~/.local/share/subscan/logs"
	defaultDBPath     = "~/.local/share/subscan/subscan.db"
	defaultModelsDir  = "~/.local/share/subscan/models"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	defaultMinConfidence       = 0.5
	defaultFPS                 = 2.0
	defaultSimilarityThreshold = 0.92
	defaultMaxGapMS            = 250
	defaultMinCueDurationMS    = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			DBPath:     defaultDBPath,
		},
		OCR: OCR{
			ModelsDir:     defaultModelsDir,
			MinConfidence: defaultMinConfidence,
		},
		Extraction: Extraction{
			FPS:        defaultFPS,
			CropBottom: true,
		},
		Cleanup: Cleanup{
			MergeSimilar:        true,
			SimilarityThreshold: defaultSimilarityThreshold,
			MaxGapMS:            defaultMaxGapMS,
			MinCueDurationMS:    defaultMinCueDurationMS,
			FilterURLLike:       true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

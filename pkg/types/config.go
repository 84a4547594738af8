package types

import "time"

// RasterizeConfig holds settings for the page-extraction stage.
type RasterizeConfig struct {
	// DPI is the rendering resolution for page images (default 300, tuned for OCR).
	DPI int `json:"dpi" yaml:"dpi"`

	// Format is the page image format: png or jpeg.
	Format string `json:"format" yaml:"format"`

	// PagesDir is the output directory for rasterized page images.
	PagesDir string `json:"pages_dir" yaml:"pages_dir"`
}

// OCRConfig holds settings for the vision-model OCR stage.
type OCRConfig struct {
	// Endpoint is the base URL of the Ollama-compatible API (e.g. "http://127.0.0.1:11434").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the vision model identifier (e.g. "qwen2.5vl:7b").
	Model string `json:"model" yaml:"model"`

	// Token is an optional bearer token for hosted endpoints.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Timeout is the per-request HTTP timeout. OCR of a dense page can run
	// for minutes on modest hardware (default 10m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retry attempts for failed OCR calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// PagesDir is the input directory of page images.
	PagesDir string `json:"pages_dir" yaml:"pages_dir"`

	// TextDir is the output directory for per-page OCR text.
	TextDir string `json:"text_dir" yaml:"text_dir"`
}

// ComposeConfig holds settings for the OCR-text-to-record stage.
type ComposeConfig struct {
	// TextDir is the input directory of OCR page text.
	TextDir string `json:"text_dir" yaml:"text_dir"`

	// SourceDir is the output directory for record TOML files.
	SourceDir string `json:"source_dir" yaml:"source_dir"`
}

// ClassifierConfig exposes the answer-shape detection thresholds. The
// defaults were tuned empirically on one corpus; the right values are
// corpus-dependent.
type ClassifierConfig struct {
	// HierarchicalThreshold is the minimum number of "N. From ..." fragments
	// required to treat an answer as a numbered argument (default 3).
	HierarchicalThreshold int `json:"hierarchical_threshold" yaml:"hierarchical_threshold"`

	// ListThreshold is the minimum number of enumerated or bracketed
	// fragments required to treat an answer as a list (default 3).
	ListThreshold int `json:"list_threshold" yaml:"list_threshold"`
}

// GenerateConfig holds settings for the document-generation stage.
type GenerateConfig struct {
	ClassifierConfig `yaml:",inline"`

	// SourceDir is the directory of record TOML files (and schedule.toml).
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputPath is the destination LaTeX file.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// CatalogConfig holds settings for the record catalog stage.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Rasterize RasterizeConfig `json:"rasterize" yaml:"rasterize"`
	OCR       OCRConfig       `json:"ocr" yaml:"ocr"`
	Compose   ComposeConfig   `json:"compose" yaml:"compose"`
	Generate  GenerateConfig  `json:"generate" yaml:"generate"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
}

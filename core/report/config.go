package report

// Config holds configuration for report output.
type Config struct {
	// OutputDir is the directory report artifacts are written to.
	OutputDir string `mapstructure:"output_dir" default:"reports"`
	// Mirror enables uploading each report to object storage.
	Mirror bool `mapstructure:"mirror" default:"false"`
	// MirrorPrefix is the object key prefix used when mirroring.
	MirrorPrefix string `mapstructure:"mirror_prefix" default:"reports/"`
}

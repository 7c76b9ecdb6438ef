package config

// Overrides is one configuration layer. Only non-nil fields override the
// layer below; nil fields inherit. LogLevel is carried as its string name
// so environment and file sources flow through the same validation.
type Overrides struct {
	ValidateInput    *bool
	ValidateOutput   *bool
	LogExecution     *bool
	LogLevel         *string
	ReturnRawResult  *bool
	MemoryMonitoring *bool
	CPUMonitoring    *bool

	LogToFile        *bool
	LogFilePath      *string
	LogFileMaxSizeMB *int
	LogFileBackups   *int

	MetricsExporter *string
}

// IsZero reports whether the layer sets no keys.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// Resolve layers overrides onto base, lowest to highest precedence, and
// validates the merged result. It is a pure function: base and the layers
// are never mutated, and identical inputs always produce the identical
// effective configuration.
func Resolve(base Config, layers ...Overrides) (Config, error) {
	cfg := base
	for _, o := range layers {
		if o.ValidateInput != nil {
			cfg.ValidateInput = *o.ValidateInput
		}
		if o.ValidateOutput != nil {
			cfg.ValidateOutput = *o.ValidateOutput
		}
		if o.LogExecution != nil {
			cfg.LogExecution = *o.LogExecution
		}
		if o.LogLevel != nil {
			lvl, err := ParseLevel(*o.LogLevel)
			if err != nil {
				return Config{}, err
			}
			cfg.LogLevel = lvl
		}
		if o.ReturnRawResult != nil {
			cfg.ReturnRawResult = *o.ReturnRawResult
		}
		if o.MemoryMonitoring != nil {
			cfg.MemoryMonitoring = *o.MemoryMonitoring
		}
		if o.CPUMonitoring != nil {
			cfg.CPUMonitoring = *o.CPUMonitoring
		}
		if o.LogToFile != nil {
			cfg.LogToFile = *o.LogToFile
		}
		if o.LogFilePath != nil {
			cfg.LogFilePath = *o.LogFilePath
		}
		if o.LogFileMaxSizeMB != nil {
			cfg.LogFileMaxSizeMB = *o.LogFileMaxSizeMB
		}
		if o.LogFileBackups != nil {
			cfg.LogFileBackups = *o.LogFileBackups
		}
		if o.MetricsExporter != nil {
			cfg.MetricsExporter = *o.MetricsExporter
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Ptr returns a pointer to v. Convenience for building Overrides literals.
func Ptr[T any](v T) *T {
	return &v
}

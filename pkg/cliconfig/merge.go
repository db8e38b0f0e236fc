package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString := func(key string, dst *string, src string) {
		if src != "" {
			*dst = src
			target.Sources[key] = sourceType
		}
	}
	mergeInt := func(key string, dst *int, src int) {
		if src != 0 {
			*dst = src
			target.Sources[key] = sourceType
		}
	}

	mergeString("addr", &target.Addr, source.Addr)
	mergeString("backend", &target.Backend, source.Backend)
	mergeString("dataDir", &target.DataDir, source.DataDir)
	mergeString("cardsFile", &target.CardsFile, source.CardsFile)
	mergeString("templatesFile", &target.TemplatesFile, source.TemplatesFile)
	mergeString("sqlitePath", &target.SQLitePath, source.SQLitePath)
	mergeString("logLevel", &target.LogLevel, source.LogLevel)
	mergeString("logFormat", &target.LogFormat, source.LogFormat)
	mergeInt("readTimeout", &target.ReadTimeout, source.ReadTimeout)
	mergeInt("writeTimeout", &target.WriteTimeout, source.WriteTimeout)

	if source.ConfigFile != "" {
		target.ConfigFile = source.ConfigFile
	}
}

package config

const (
	defaultLibraryRoot   = "~/assets"
	defaultLogDir        = "~/.local/share/curator/logs"
	defaultIndexDir      = "~/.local/share/curator/index"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultNamingMaxLen  = 200
	defaultBundleMaxMiB  = 4096
	defaultBundleWarnMiB = 1024
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			Root:                 defaultLibraryRoot,
			UseCatalogSubfolders: true,
		},
		Naming: Naming{
			IncludeDate: false,
			MaxLength:   defaultNamingMaxLen,
		},
		Bundle: Bundle{
			MaxSizeMiB:  defaultBundleMaxMiB,
			WarnSizeMiB: defaultBundleWarnMiB,
			CopyCatalog: true,
		},
		Index: Index{
			Enabled: true,
			Dir:     defaultIndexDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}

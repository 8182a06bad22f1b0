package config

const (
	defaultConfigPath          = "~/.config/condodocs/config.toml"
	projectConfigName          = "condodocs.toml"
	defaultBaseDir             = "."
	defaultBoletosDir          = "BOLETOS"
	defaultNotasDir            = "NOTA_FISCAL"
	defaultOutputDir           = "ORGANIZADOS"
	defaultThreshold           = 0.6
	defaultMethod              = MethodSequence
	defaultCompanyTokens       = 2
	defaultCompanyFallback     = "OUTROS"
	defaultSequenceFallback    = "0000"
	defaultComparePrefix       = "CNPJ_"
	defaultPairPosition        = 2
	defaultNotaOnlyPrefix      = "NF_"
	defaultNotasUnidentified   = "NFs_SEM_CNPJ_IDENTIFICADO"
	defaultBoletosUnidentified = "BOLETOS_SEM_CNPJ_IDENTIFICADO"
	defaultSortPosition        = 3
	defaultSortUnidentified    = "SEM_TERCER_CNPJ"
	defaultNotasOutputDir      = "NOTAS_ORGANIZADAS"
	defaultBoletosUnnamed      = "BOLETOS_SEM_NOME"
	defaultBoletosOutputDir    = "BOLETOS_ORGANIZADOS"
	defaultLinkOutputDir       = "VINCULADOS"
	defaultLinkBoletosSubdir   = "BOLETOS"
	defaultLinkNotasSubdir     = "NOTAS_FISCAIS"
	defaultLinkSeparator       = "_"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Similarity methods.
const (
	MethodSequence    = "sequence"
	MethodLevenshtein = "levenshtein"
)

// Conflict policies applied when a destination file already exists.
const (
	ConflictSkip      = "skip"
	ConflictOverwrite = "overwrite"
	ConflictVersion   = "version"
)

// Notas grouping and rename strategies.
const (
	GroupByCompany = "company"
	GroupByTrimmed = "trimmed"

	RenameSequence = "sequence"
	RenameTrimmed  = "trimmed"
	RenameKeep     = "keep"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BaseDir:    defaultBaseDir,
			BoletosDir: defaultBoletosDir,
			NotasDir:   defaultNotasDir,
			OutputDir:  defaultOutputDir,
		},
		Matching: Matching{
			Threshold: defaultThreshold,
			Method:    defaultMethod,
		},
		Naming: Naming{
			CompanyTokens:    defaultCompanyTokens,
			CompanyFallback:  defaultCompanyFallback,
			SequenceFallback: defaultSequenceFallback,
			ComparePrefix:    defaultComparePrefix,
		},
		Pair: Pair{
			Position:            defaultPairPosition,
			NotaOnlyPrefix:      defaultNotaOnlyPrefix,
			NotasUnidentified:   defaultNotasUnidentified,
			BoletosUnidentified: defaultBoletosUnidentified,
		},
		Sort: Sort{
			Position:     defaultSortPosition,
			Unidentified: defaultSortUnidentified,
			Move:         true,
		},
		Notas: Notas{
			GroupBy:   GroupByCompany,
			Rename:    RenameSequence,
			OutputDir: defaultNotasOutputDir,
		},
		Boletos: Boletos{
			Unnamed:   defaultBoletosUnnamed,
			OutputDir: defaultBoletosOutputDir,
		},
		Link: Link{
			OutputDir:     defaultLinkOutputDir,
			BoletosSubdir: defaultLinkBoletosSubdir,
			NotasSubdir:   defaultLinkNotasSubdir,
			Separator:     defaultLinkSeparator,
		},
		Organize: Organize{
			OnConflict: ConflictSkip,
			Verify:     true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

type Storage struct {
	Filesystem         string   `env:"FILESYSTEM,expand" envDefault:"local://./markdown_files"`
	TextExtensions     []string `env:"TEXT_EXTENSIONS,expand" envDefault:".md" envSeparator:","`
	RawExtensions      []string `env:"RAW_EXTENSIONS,expand" envDefault:".pdf" envSeparator:","`
	WritableExtensions []string `env:"WRITABLE_EXTENSIONS,expand" envDefault:".md" envSeparator:","`
}

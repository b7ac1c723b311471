package configs

// Storage configures where attachment files are kept on disk.
type Storage struct {
	// Dir is the base directory for stored files. It is created on
	// startup if missing.
	Dir string `env:"DIR" envDefault:"./data/files"`
}

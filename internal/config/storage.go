package config

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL prefixes object keys in returned URLs. Empty means the
	// endpoint itself is public.
	PublicBaseURL string
}

func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:        getEnv("MINIO_BUCKET", "bootcamp"),
		UseSSL:        getEnv("MINIO_USE_SSL", "false") == "true",
		PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
	}
}

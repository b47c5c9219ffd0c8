package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	BlobDriver   string // fs
	BlobBasePath string

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

// fileConfig is the optional yaml overlay; env vars win over file values.
type fileConfig struct {
	Server struct {
		Addr      string `yaml:"addr"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Blob struct {
		Driver   string `yaml:"driver"`
		BasePath string `yaml:"base_path"`
	} `yaml:"blob"`
}

// FromEnv builds the runtime config. When STUDIO_CONFIG_FILE names a yaml
// file, its values fill whatever the environment leaves unset.
func FromEnv() Config {
	var fc fileConfig
	if path := os.Getenv("STUDIO_CONFIG_FILE"); path != "" {
		loadFile(path, &fc)
	}

	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:          mode,
		HTTPAddr:      envOr("HTTP_ADDR", firstOf(fc.Server.Addr, ":8080")),
		PublicURL:     envOr("PUBLIC_URL", fc.Server.PublicURL),
		DBDriver:      envOr("DB_DRIVER", firstOf(fc.Database.Driver, "sqlite")),
		DBDSN:         envOr("DB_DSN", fc.Database.DSN),
		BlobDriver:    envOr("BLOB_DRIVER", firstOf(fc.Blob.Driver, "fs")),
		BlobBasePath:  envOr("BLOB_BASE_PATH", firstOf(fc.Blob.BasePath, "./data")),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://studio.edukita.id"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func loadFile(path string, fc *fileConfig) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_ = yaml.NewDecoder(f).Decode(fc)
}

func firstOf(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

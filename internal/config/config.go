package config

import (
	"os"
	"strings"
)

// Config carries everything the gateway binary needs from the environment.
type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	CORSOrigins []string

	EnableMetrics bool

	// Display names for the fixed judging panel.
	JudgeCEOName     string
	JudgeIntern1Name string
	JudgeIntern2Name string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:  addr,
		PublicURL: os.Getenv("PUBLIC_URL"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		EnableMetrics: envBool("ENABLE_METRICS", true),

		JudgeCEOName:     envOr("JUDGE_CEO_NAME", "Irene Veng"),
		JudgeIntern1Name: envOr("JUDGE_INTERN1_NAME", "Wei Wu"),
		JudgeIntern2Name: envOr("JUDGE_INTERN2_NAME", "Yanwen Wang"),
	}
}

// JudgeName maps a judge role to its configured display name.
func (c Config) JudgeName(role string) string {
	switch role {
	case "ceo":
		return c.JudgeCEOName
	case "intern1":
		return c.JudgeIntern1Name
	case "intern2":
		return c.JudgeIntern2Name
	default:
		return role
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
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

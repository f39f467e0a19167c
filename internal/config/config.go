package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	OllamaURL        string
	OllamaGenModel   string
	OllamaEmbedModel string

	RerankerURL   string
	RerankerModel string

	QdrantURL        string
	QdrantCollection string

	PassagesPath       string
	PDFDirectory       string
	ExpansionRulesPath string

	NATSURL           string
	NATSReloadSubject string

	TopNVector  int
	TopNKeyword int
	TopKFinal   int

	APIRateLimitRPS   int
	APIRateLimitBurst int
	APIMaxInFlight    int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaGenModel:   mustEnv("OLLAMA_GEN_MODEL", "gemma2:9b"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "bkai-vietnamese-bi-encoder"),

		RerankerURL:   mustEnv("RERANKER_URL", "http://localhost:8081"),
		RerankerModel: mustEnv("RERANKER_MODEL", "vietnamese-reranker"),

		QdrantURL:        mustEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: mustEnv("QDRANT_COLLECTION", "law_passages"),

		PassagesPath:       mustEnv("PASSAGES_PATH", "./data/vector_store/passages.json"),
		PDFDirectory:       mustEnv("PDF_DIRECTORY", "./data/pdfs"),
		ExpansionRulesPath: mustEnv("EXPANSION_RULES_PATH", ""),

		NATSURL:           mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSReloadSubject: mustEnv("NATS_RELOAD_SUBJECT", "lawbot.index.reload"),

		TopNVector:  mustEnvInt("RAG_TOP_N_VECTOR", 7),
		TopNKeyword: mustEnvInt("RAG_TOP_N_KEYWORD", 7),
		TopKFinal:   mustEnvInt("RAG_TOP_K_FINAL", 4),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 32),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package config

import "time"

type LeaderboardCfg struct {
	RefreshInterval time.Duration
	CacheTTL        time.Duration
}

func NewLeaderboardCfg() *LeaderboardCfg {
	return &LeaderboardCfg{
		RefreshInterval: getSecondsEnv("LEADERBOARD_REFRESH_INTERVAL_SEC", 30),
		CacheTTL:        getSecondsEnv("LEADERBOARD_CACHE_TTL_SEC", 60),
	}
}

type HttpConfig struct {
	Port           int
	ServiceName    string
	MaxUploadBytes int64
	// RateLimit is the sustained submissions per second allowed per client.
	RateLimit float64
	RateBurst int
	// TrustedProxies may set X-Forwarded-For; comma separated IPs or CIDRs.
	TrustedProxies []string
	RateLimitIdle  time.Duration
}

func NewHttpConfig() *HttpConfig {
	return &HttpConfig{
		Port:           getIntEnv("HTTP_PORT", 8000),
		ServiceName:    getEnv("SERVICE_NAME", "bootcamp"),
		MaxUploadBytes: int64(getIntEnv("MAX_UPLOAD_MB", 50)) << 20,
		RateLimit:      getFloatEnv("SUBMIT_RATE_LIMIT", 2),
		RateBurst:      getIntEnv("SUBMIT_RATE_BURST", 5),
		TrustedProxies: getListEnv("TRUSTED_PROXIES"),
		RateLimitIdle:  getSecondsEnv("SUBMIT_RATE_IDLE_SEC", 600),
	}
}

package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Ollama.BaseURL == "" {
		cfg.Ollama.BaseURL = "http://localhost:11434"
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = "llava"
	}
	if cfg.Ollama.TimeoutSeconds == 0 {
		cfg.Ollama.TimeoutSeconds = 120
	}
	if cfg.Analysis.MaxRetries == 0 {
		cfg.Analysis.MaxRetries = 3
	}
	if cfg.Analysis.RetryDelaySeconds == 0 {
		cfg.Analysis.RetryDelaySeconds = 2
	}
	if cfg.Analysis.Temperature == 0 {
		cfg.Analysis.Temperature = 0.1
	}
	if cfg.Analysis.TopP == 0 {
		cfg.Analysis.TopP = 0.9
	}
	if cfg.Analysis.TopK == 0 {
		cfg.Analysis.TopK = 40
	}
	if cfg.Analysis.NumPredict == 0 {
		cfg.Analysis.NumPredict = 2048
	}
	if cfg.Analysis.ContextBlockChars == 0 {
		cfg.Analysis.ContextBlockChars = 500
	}
	if cfg.Files.MaxSizeMB == 0 {
		cfg.Files.MaxSizeMB = 50
	}
	if cfg.Files.ImageExtensions == nil {
		cfg.Files.ImageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 100
	}
}

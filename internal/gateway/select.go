package gateway

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/quantifyme-backend/internal/config"
)

// New selects the interpreter named by cfg.Provider. A live provider with
// missing credentials falls back to the Stub with a warning, so a bad key
// never prevents the process from starting.
func New(cfg config.AIConfig, httpClient *http.Client) Interpreter {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			log.Warn().Str("provider", ProviderOpenAI).Msg("OPENAI_API_KEY missing; using stub interpreter")
			return Stub{}
		}
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, httpClient)
	case ProviderHF:
		if cfg.HF.Token == "" {
			log.Warn().Str("provider", ProviderHF).Msg("HF_TOKEN missing; using stub interpreter")
			return Stub{}
		}
		return NewHuggingFace(HFOptions{
			Token:       cfg.HF.Token,
			Model:       cfg.HF.Model,
			APIURL:      cfg.HF.APIURL,
			MaxTokens:   cfg.HF.MaxTokens,
			Temperature: cfg.HF.Temperature,
			TopP:        cfg.HF.TopP,
		}, httpClient)
	}
	return Stub{}
}

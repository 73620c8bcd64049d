package llm

type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible("https://openrouter.ai/api/v1", apiKey, model),
	}
}

func (o *OpenRouterProvider) Name() string {
	return "openrouter"
}

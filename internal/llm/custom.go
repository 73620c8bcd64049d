package llm

type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newOpenAICompatible(baseURL, apiKey, model),
	}
}

func (c *CustomProvider) Name() string {
	return "custom"
}

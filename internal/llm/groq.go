package llm

type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = "meta-llama/llama-4-scout-17b-16e-instruct"
	}
	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible("https://api.groq.com/openai/v1", apiKey, model),
	}
}

func (g *GroqProvider) Name() string {
	return "groq"
}

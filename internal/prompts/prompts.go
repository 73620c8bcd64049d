package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/sant0-9/captionkit/internal/caption"
	"github.com/sant0-9/captionkit/internal/profile"
)

// SystemPrompt is sent as the system message with every caption request.
const SystemPrompt = "You write social media captions. Follow the requested output format exactly; the reply is parsed by a program."

//go:embed templates/generation.tmpl
var generationSource string

//go:embed templates/improvement.tmpl
var improvementSource string

var (
	generationTmpl  = template.Must(template.New("generation").Parse(generationSource))
	improvementTmpl = template.Must(template.New("improvement").Parse(improvementSource))
)

// GenerationParams describe a first or repeated caption request.
type GenerationParams struct {
	Vibe         string
	Length       string
	Language     string
	Instructions string
	Profile      *profile.Profile

	// Regenerate asks for novelty against Previous.
	Regenerate bool
	Previous   []string
}

// ImprovementParams describe a request to rework an edited caption.
type ImprovementParams struct {
	Vibe         string
	Language     string
	Instructions string
	Current      string
	Profile      *profile.Profile
}

type templateData struct {
	Count        int
	Sentences    int
	MinTags      int
	MaxTags      int
	Regenerate   bool
	Tone         string
	Context      string
	Instructions string
	Current      string
	Language     string
	Delimiter    string
	Previous     []string

	ExamplePrimary   string
	ExampleSecondary string
	ExampleNote      string
}

// BuildGenerationPrompt renders the instruction for a batch of captions.
// Unknown vibe or length keys fall back to DefaultVibe and DefaultLength.
func BuildGenerationPrompt(p GenerationParams) string {
	tone, _ := ToneFor(p.Vibe)
	sentences, _ := SentenceCount(p.Length)
	language := languageOrDefault(p.Language)

	data := templateData{
		Count:        caption.BatchSize,
		Sentences:    sentences,
		MinTags:      MinHashtags,
		MaxTags:      MaxHashtags,
		Regenerate:   p.Regenerate,
		Tone:         tone,
		Context:      BusinessContext(p.Profile),
		Instructions: strings.TrimSpace(p.Instructions),
		Language:     language,
		Delimiter:    caption.Delimiter,
	}
	if p.Regenerate {
		for _, prev := range p.Previous {
			if prev = oneLine(prev); prev != "" {
				data.Previous = append(data.Previous, prev)
			}
		}
	}
	data.ExamplePrimary, data.ExampleSecondary, data.ExampleNote = workedExample(language, sentences)

	return render(generationTmpl, data)
}

// BuildImprovementPrompt renders the instruction for labeled rewrites of
// the current caption.
func BuildImprovementPrompt(p ImprovementParams) string {
	tone, _ := ToneFor(p.Vibe)
	language := languageOrDefault(p.Language)

	data := templateData{
		Count:        caption.BatchSize,
		MinTags:      MinHashtags,
		MaxTags:      MaxHashtags,
		Tone:         tone,
		Context:      BusinessContext(p.Profile),
		Instructions: strings.TrimSpace(p.Instructions),
		Language:     language,
		Delimiter:    caption.Delimiter,
	}
	data.ExamplePrimary, data.ExampleSecondary, data.ExampleNote = workedExample(language, 2)
	data.Current = strings.TrimSpace(p.Current)

	return render(improvementTmpl, data)
}

// BusinessContext renders the present profile fields, one per line. A nil
// or empty profile yields "".
func BusinessContext(p *profile.Profile) string {
	if p.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for _, f := range p.Fields() {
		b.WriteString("- ")
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(oneLine(f.Value))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func languageOrDefault(lang string) string {
	if lang = strings.TrimSpace(lang); lang != "" {
		return lang
	}
	return DefaultLanguage
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// render executes a pre-parsed template. The templates and templateData are
// fixed at build time, so an execution error is a bug and panics like
// template.Must does at parse time.
func render(tmpl *template.Template, data templateData) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("prompts: rendering %s: %v", tmpl.Name(), err))
	}
	return strings.TrimSpace(buf.String()) + "\n"
}

package gemini

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/cunningbot/internal/generation"
	"google.golang.org/genai"
)

const defaultPersona = "You are a helpful AI assistant."

const systemInstructionText = `{{.Persona}}
You are chatting in a Discord channel. Keep replies conversational and reasonably brief.
{{- if .UserName}}
The person talking to you is called {{.UserName}}.
{{- end}}`

var systemInstruction = template.Must(template.New("system_instruction").Parse(systemInstructionText))

// instructionData is passed to the system instruction template
type instructionData struct {
	Persona  string
	UserName string
}

// renderSystemInstruction builds the system instruction for req.
func renderSystemInstruction(req generation.Request) (string, error) {
	persona := strings.TrimSpace(req.Persona)
	if persona == "" {
		persona = defaultPersona
	}

	var buf bytes.Buffer
	err := systemInstruction.Execute(&buf, instructionData{
		Persona:  persona,
		UserName: strings.TrimSpace(req.UserName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute system instruction template: %w", err)
	}
	return buf.String(), nil
}

// buildContents converts the history and the current message into Gemini turns.
// Earlier user turns are prefixed with their author so that the model can
// tell participants apart.
func buildContents(req generation.Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		text := strings.TrimSpace(turn.Content)
		if text == "" {
			continue
		}
		role := "user"
		if turn.Role == generation.RoleAssistant {
			role = "model"
		} else if turn.Author != "" {
			text = turn.Author + ": " + text
		}
		contents = append(contents, textContent(role, text))
	}
	return append(contents, textContent("user", req.Message))
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{
		Role:  role,
		Parts: []*genai.Part{{Text: text}},
	}
}

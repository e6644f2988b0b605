package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Expert is a single chat session with a name, a model configuration, and an
// optional library of functions the model can call.
//
// An Expert can itself be exposed as a function to another Expert, so that a
// facilitator can route questions to specialists.
type Expert struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ModelName   string `json:"model"`

	Config  *genai.GenerateContentConfig `json:"-"`
	Library Library                      `json:"-"`

	chat *genai.Chat
}

// Start creates the underlying chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot create chat for %q: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends a question to the expert and resolves function calls until the
// model produces a plain text answer.
func (e *Expert) Ask(ctx context.Context, question string) (string, error) {
	resp, err := e.chat.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		return "", fmt.Errorf("%s: cannot send message: %w", e.Name, err)
	}

	for {
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("%s: empty response", e.Name)
		}
		part := resp.Candidates[0].Content.Parts[0]
		if part.FunctionCall == nil {
			return resp.Text(), nil
		}
		if e.Library == nil {
			return "", fmt.Errorf("%s: model called %q but expert has no library", e.Name, part.FunctionCall.Name)
		}
		fresp := e.Library(ctx, part.FunctionCall)
		resp, err = e.chat.SendMessage(ctx, genai.Part{FunctionResponse: fresp})
		if err != nil {
			return "", fmt.Errorf("%s: cannot send function response: %w", e.Name, err)
		}
	}
}

// Declaration exposes this expert as a callable function: a single "question"
// string argument, answered by the expert's chat.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask this expert, in plain language.",
				},
			},
			Required: []string{"question"},
		},
	}
}

// Call answers a function call routed to this expert.
func (e *Expert) Call(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: map[string]any{},
	}

	question, ok := call.Args["question"].(string)
	if !ok {
		fresp.Response["error"] = fmt.Sprintf("%s: missing 'question' argument", e.Name)
		return fresp
	}

	log.Printf("expert %s: %s", e.Name, question)
	answer, err := e.Ask(ctx, question)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	log.Printf("expert %s: answered %d bytes", e.Name, len(answer))

	fresp.Response["answer"] = answer
	return fresp
}

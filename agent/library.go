package agent

import (
	"context"

	"google.golang.org/genai"
)

// Library resolves a function call into a function response.
type Library func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse

// Function is anything that can be declared to the model and called back.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse
}

// NewLibrary builds a Library dispatching calls by name over the given
// functions.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Declaration().Name == call.Name {
				return f.Call(ctx, call)
			}
		}
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": "unknown function " + call.Name,
			},
		}
	}
}

// NewDeclaration collects the declarations of the given functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		decls = append(decls, f.Declaration())
	}
	return decls
}

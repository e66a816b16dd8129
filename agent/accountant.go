package agent

import (
	"context"

	"google.golang.org/genai"
)

// NewAccountant builds the expert in charge of the user's Coincheck
// profit and loss. report and balances render the current state as
// markdown; they are exposed to the model as tools.
func NewAccountant(report, balances func() (string, error)) *Expert {
	lib := []Function{
		renderTool("Report",
			`Report computes the full yearly profit and loss: one row per
			transaction with the realized profit, followed by the ending
			balances per currency.`,
			report),
		renderTool("Balances",
			`Balances lists the ending position of every currency: the
			quantity held and its weighted average acquisition cost in JPY.`,
			balances),
	}

	return &Expert{
		Name: "Accountant",
		Description: `The Accountant reads the user's Coincheck transaction
		history and computes realized profit and loss.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: declarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's cryptocurrency
				profit and loss on the Coincheck exchange.
				Use the available tools to get the computed figures; never
				invent a number. All monetary amounts are Japanese yen.
				Profits are realized with the weighted average cost method:
				when the user asks why a figure is what it is, explain it in
				those terms.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// renderTool wraps a markdown-producing callback as a zero-argument tool.
func renderTool(name, description string, render func() (string, error)) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			out, err := render()
			if err != nil {
				return &genai.FunctionResponse{
					ID:   id,
					Name: name,
					Response: map[string]any{
						"error": err.Error(),
					},
				}
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"output": out,
				},
			}
		},
	}
}

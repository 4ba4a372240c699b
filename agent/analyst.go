package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/alphafund/alphafund"
	"github.com/alphafund/alphafund/renderer"
)

const model = "gemini-2.5-pro"

// Loader returns the user's portfolio, freshly loaded from the trade
// book. Each tool call loads it anew so the assistant always sees the
// latest trades.
type Loader func() (*alphafund.Portfolio, error)

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and keep the context of your previous questions.

			The user is here primarily to understand how his portfolio's value evolved
			and why. Devise a plan of questions to each expert and come up with the
			best response to the user's request.

			The user assumes you know his tickers; check the portfolio first to
			understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert that grounds answers in web search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		well aware of financial products and institutions and of the latest
		news about funds and companies. Ask the Trader whenever you need
		recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading. You can search and find anything related
			to financial institutions, companies, markets and funds. You leverage
			Google Search to ground your assertions, you can get the latest news,
			and you know how to relate them to the user's request.
		`}}},
		},
	}
}

// NewAnalyst returns the expert that reads the user's portfolio. Its
// tools render the same reports the command line shows.
func NewAnalyst(load Loader) *Expert {
	lib := []Function{
		summaryTool(load),
		historyTool(load),
		allocationTool(load),
	}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the user's
		trade book and reconstructing the portfolio's valuation. He can report
		the current value, the full daily history, and the allocation breakdown.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst in charge of the user's portfolio. You know how to
			use the Tools to extract its valuation history, its current value and
			its allocation. You are part of a team of experts; yours is everything
			about the user's portfolio. Pardon their approximative language and
			figure out what they meant.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// respond builds the tool response, folding a failure into the error
// field so the model can react to it.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		resp.Response["error"] = err.Error()
		return resp
	}
	resp.Response["output"] = output
	return resp
}

func summaryTool(load Loader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary reports the portfolio's latest settled total value,
			its liquidation value, and the cumulative return since the first trade.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown summary of the portfolio.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := renderSummary(ctx, load)
			return respond(id, "Summary", out, err)
		},
	}
}

func historyTool(load Loader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "History",
			Description: `History reports the portfolio's daily valuation table: one
			column per asset, one for cash, the total and the cumulative return,
			one row per calendar day.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the daily valuations.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := renderHistory(ctx, load)
			return respond(id, "History", out, err)
		},
	}
}

func allocationTool(load Loader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Allocation",
			Description: `Allocation reports how the portfolio's most recent settled
			value splits across assets and cash, with weights.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the allocation breakdown.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := renderAllocation(ctx, load)
			return respond(id, "Allocation", out, err)
		},
	}
}

func renderSummary(ctx context.Context, load Loader) (string, error) {
	p, err := load()
	if err != nil {
		return "", fmt.Errorf("could not load portfolio: %w", err)
	}
	table, err := p.Valuation(ctx)
	if err != nil {
		return "", err
	}
	liquidation, err := p.Liquidate(ctx)
	if err != nil {
		return "", err
	}
	positions, err := p.Positions(ctx)
	if err != nil {
		return "", err
	}
	return renderer.RenderSummary(renderer.NewSummary("", table, p.InitialCash(), liquidation, positions)), nil
}

func renderHistory(ctx context.Context, load Loader) (string, error) {
	p, err := load()
	if err != nil {
		return "", fmt.Errorf("could not load portfolio: %w", err)
	}
	table, err := p.Valuation(ctx)
	if err != nil {
		return "", err
	}
	return renderer.RenderHistory(renderer.NewHistory("", table, p.InitialCash().Currency())), nil
}

func renderAllocation(ctx context.Context, load Loader) (string, error) {
	p, err := load()
	if err != nil {
		return "", fmt.Errorf("could not load portfolio: %w", err)
	}
	a, err := p.Allocation(ctx)
	if err != nil {
		return "", err
	}
	return renderer.RenderAllocation(renderer.NewAllocation("", a)), nil
}

package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/docs"
	"github.com/etnz/taxlot/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
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

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the tax consequences of acquiring and disposing
			of assets: realized gains, cost basis, holding periods, and what a planned disposal would cost.

			Never guess a figure. Any number about the user's lots, gains or cost basis must come from
			the Accountant, who reads the actual ledger files. Market context and rule questions go to
			the Analyst.

			Devise a plan of questions to ask each expert and come up with the best response to
			the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the market analyst expert, grounded by Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of asset prices, exchanges, and the latest market and tax news.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			asset prices, exchanges, markets and tax rules. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAccountant returns the accountant expert, whose tools read the user's
// ledger files.
func NewAccountant() *Expert {

	lib := []Function{ListLots, TaxReport, SimulateDisposal}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's acquisition lots
		and transaction journal. He can compute the relevant tax figures: remaining lots, realized
		gains over a tax year, and the outcome of a hypothetical disposal.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's acquisition lots and transaction journal.
				You know how to use the Tools to extract relevant figures. You are part of a team of
				experts; yours is everything about the user's books. They might ask you questions in
				approximative language, pardon it and figure out what they meant.

				Use the available tools to get information about
				  - the remaining acquisition lots and their cost basis
				  - the tax report for a year (realized gains, short and long term)
				  - what a hypothetical disposal would realize, without recording it
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	return f.Func(ctx, call)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func errResponse(call *genai.FunctionCall, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(call *genai.FunctionCall, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// ListLots renders the remaining acquisition lots, optionally valued at a
// current price.
var ListLots = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "ListLots",
		Description: `ListLots lists the acquisition lots still held, with their purchase date,
		remaining quantity and remaining cost basis.

		With a price, it also values each lot at that price and shows the unrealized gain.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"price": {
					Type:        genai.TypeNumber,
					Description: "Optional current unit price used to value the lots.",
				},
				"currency": {
					Type:        genai.TypeString,
					Description: "Currency of the price, USD by default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of the remaining lots.",
		},
	},
	Func: func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		ledger, err := loadLots()
		if err != nil {
			return errResponse(call, err)
		}
		price, err := parsePrice(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		return okResponse(call, renderer.LotsMarkdown(ledger.RemainingLots(), price))
	},
}

// TaxReport computes the tax report for a year from the journal and disposal
// files.
var TaxReport = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "TaxReport",
		Description: `TaxReport processes the transaction journal and the recorded disposals for a
		tax year and reports the realized gains, split between short-term and long-term, along
		with the lots remaining at the end of the run.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"year": {
					Type:        genai.TypeInteger,
					Description: "The tax year to report on. The current year is the default.",
				},
				"strategy": {
					Type:        genai.TypeString,
					Description: "Lot consumption strategy: fifo (default), lifo, hifo or specific-id.",
				},
				"price": {
					Type:        genai.TypeNumber,
					Description: "Optional current unit price used to value the remaining lots.",
				},
				"currency": {
					Type:        genai.TypeString,
					Description: "Currency of the price, USD by default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted tax report for the year.",
		},
	},
	Func: func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		year, err := parseYear(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		strategy, err := parseStrategy(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		price, err := parsePrice(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		journal, err := loadJournal()
		if err != nil {
			return errResponse(call, err)
		}
		requests, err := loadDisposals()
		if err != nil {
			return errResponse(call, err)
		}

		c := taxlot.NewCalculator(taxlot.Config{Year: year, Strategy: strategy, Disposals: requests})
		result := c.ProcessTransactions(journal.Transactions())
		report := c.Report(price)

		out := renderer.ReportMarkdown(&report)
		if !result.IsValid {
			out = renderer.ResultMarkdown(result) + "\n" + out
		}
		return okResponse(call, out)
	},
}

// SimulateDisposal consumes a hypothetical disposal on a clone of the lots,
// leaving the files untouched.
var SimulateDisposal = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "SimulateDisposal",
		Description: `SimulateDisposal computes what a disposal would realize, which lots it would
		consume and the resulting gain, without recording anything. Use it to answer "what if I
		sold X now" questions.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"quantity": {
					Type:        genai.TypeNumber,
					Description: "The quantity to dispose of.",
				},
				"price": {
					Type:        genai.TypeNumber,
					Description: "The unit sale price.",
				},
				"currency": {
					Type:        genai.TypeString,
					Description: "Currency of the price, USD by default.",
				},
				"strategy": {
					Type:        genai.TypeString,
					Description: "Lot consumption strategy: fifo (default), lifo or hifo.",
				},
				"date": {
					Type: genai.TypeString,
					Description: `The sale date. Today is the default.
					Otherwise it uses a flexible date format based on YYYY-MM-DD:

					` + must(docs.GetTopic("dates")),
				},
			},
			Required: []string{"quantity", "price"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted breakdown of the simulated disposal.",
		},
	},
	Func: func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		quantity, err := parseQuantity(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		price, err := parsePrice(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		if price.IsZero() {
			return errResponse(call, fmt.Errorf("argument 'price' is required"))
		}
		strategy, err := parseStrategy(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		date, err := parseDate(call.Args)
		if err != nil {
			return errResponse(call, err)
		}
		ledger, err := loadLots()
		if err != nil {
			return errResponse(call, err)
		}

		req := taxlot.DisposalRequest{On: date, Quantity: quantity, Price: price}
		disposal, err := ledger.Clone().Consume(req, strategy, 0)
		if err != nil {
			return errResponse(call, err)
		}
		return okResponse(call, renderer.DisposalMarkdown("Simulated Disposal", disposal, true))
	},
}

// loadLots decodes the lots from the application's default lots file.
// If the file does not exist, it returns a new empty ledger.
func loadLots() (*taxlot.Ledger, error) {
	const lotsFile = "lots.jsonl"
	f, err := os.Open(lotsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return taxlot.NewLedger(), nil
		}
		return nil, fmt.Errorf("could not open lots file %q: %w", lotsFile, err)
	}
	defer f.Close()

	ledger, err := taxlot.DecodeLots(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode lots file %q: %w", lotsFile, err)
	}
	return ledger, nil
}

// loadJournal decodes the transaction journal from the application's default
// journal file. If the file does not exist, it returns an empty journal.
func loadJournal() (*taxlot.Journal, error) {
	const journalFile = "transactions.jsonl"
	f, err := os.Open(journalFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return taxlot.NewJournal(), nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", journalFile, err)
	}
	defer f.Close()

	journal, err := taxlot.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", journalFile, err)
	}
	return journal, nil
}

// loadDisposals decodes the disposal requests from the application's default
// disposals file. If the file does not exist, it returns none.
func loadDisposals() ([]taxlot.DisposalRequest, error) {
	const disposalsFile = "disposals.jsonl"
	f, err := os.Open(disposalsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open disposals file %q: %w", disposalsFile, err)
	}
	defer f.Close()

	requests, err := taxlot.DecodeDisposals(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode disposals file %q: %w", disposalsFile, err)
	}
	return requests, nil
}

func parseDate(args map[string]any) (taxlot.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return taxlot.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return taxlot.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := taxlot.ParseDate(sdate)
	if err != nil {
		return taxlot.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s", sdate, must(docs.GetTopic("dates")))
	}

	return date, nil
}

func parseYear(args map[string]any) (int, error) {
	iyear, hasYear := args["year"]
	if !hasYear {
		return taxlot.Today().Year(), nil
	}
	year, ok := iyear.(float64)
	if !ok {
		return 0, fmt.Errorf("argument 'year' is not a number as expected but %T", iyear)
	}
	return int(year), nil
}

func parseStrategy(args map[string]any) (taxlot.Strategy, error) {
	istrategy, hasStrategy := args["strategy"]
	if !hasStrategy {
		return taxlot.FIFO, nil
	}
	sstrategy, ok := istrategy.(string)
	if !ok {
		return taxlot.FIFO, fmt.Errorf("argument 'strategy' is not a string as expected but %T", istrategy)
	}
	return taxlot.ParseStrategy(sstrategy)
}

func parseQuantity(args map[string]any) (taxlot.Quantity, error) {
	iquantity, hasQuantity := args["quantity"]
	if !hasQuantity {
		return taxlot.Q(0), fmt.Errorf("argument 'quantity' is required")
	}
	quantity, ok := iquantity.(float64)
	if !ok {
		return taxlot.Q(0), fmt.Errorf("argument 'quantity' is not a number as expected but %T", iquantity)
	}
	return taxlot.Q(quantity), nil
}

// parsePrice reads the optional 'price' and 'currency' arguments. A missing
// price yields a zero Money.
func parsePrice(args map[string]any) (taxlot.Money, error) {
	iprice, hasPrice := args["price"]
	if !hasPrice {
		return taxlot.Money{}, nil
	}
	price, ok := iprice.(float64)
	if !ok {
		return taxlot.Money{}, fmt.Errorf("argument 'price' is not a number as expected but %T", iprice)
	}
	currency := "USD"
	if icur, hasCur := args["currency"]; hasCur {
		scur, ok := icur.(string)
		if !ok {
			return taxlot.Money{}, fmt.Errorf("argument 'currency' is not a string as expected but %T", icur)
		}
		currency = scur
	}
	return taxlot.M(price, currency), nil
}

// Package cmd implements the CLI application to manage a tax lot ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&acquireCmd{}, "journal")
	c.Register(&transferCmd{}, "journal")
	c.Register(&disposeCmd{}, "journal")
	c.Register(&txCmd{}, "journal")
	c.Register(&fmtCmd{}, "journal")

	c.Register(&processCmd{}, "tax")
	c.Register(&reportCmd{}, "tax")
	c.Register(&simulateCmd{}, "tax")
	c.Register(&optimizeCmd{}, "tax")

	c.Register(&lotsCmd{}, "lots")
	c.Register(&checkCmd{}, "lots")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("journal-file", "transactions.jsonl", "Path to the journal file containing transactions (JSONL format)")
var lotsFile = flag.String("lots-file", "lots.jsonl", "Path to the acquisition lots file (JSONL format)")
var disposalsFile = flag.String("disposals-file", "disposals.jsonl", "Path to the disposal requests file (JSONL format)")

// DecodeJournal decodes the journal from the app default journal file.
// A missing file is an empty journal.
func DecodeJournal() (*taxlot.Journal, error) {
	f, err := os.Open(*journalFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return taxlot.NewJournal(), nil
		}
		return nil, fmt.Errorf("cannot open journal file %q: %w", *journalFile, err)
	}
	defer f.Close()

	journal, err := taxlot.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode journal file %q: %w", *journalFile, err)
	}
	return journal, nil
}

// DecodeLots decodes the ledger from the app default lots file.
// A missing file is an empty ledger.
func DecodeLots() (*taxlot.Ledger, error) {
	f, err := os.Open(*lotsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return taxlot.NewLedger(), nil
		}
		return nil, fmt.Errorf("cannot open lots file %q: %w", *lotsFile, err)
	}
	defer f.Close()

	ledger, err := taxlot.DecodeLots(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode lots file %q: %w", *lotsFile, err)
	}
	return ledger, nil
}

// DecodeDisposals decodes the disposal requests from the app default
// disposals file. A missing file means no disposals.
func DecodeDisposals() ([]taxlot.DisposalRequest, error) {
	f, err := os.Open(*disposalsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot open disposals file %q: %w", *disposalsFile, err)
	}
	defer f.Close()

	requests, err := taxlot.DecodeDisposals(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode disposals file %q: %w", *disposalsFile, err)
	}
	return requests, nil
}

// EncodeTransaction appends a single transaction to the app default journal file.
func EncodeTransaction(tx taxlot.Transaction) subcommands.ExitStatus {
	filename := *journalFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := taxlot.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// EncodeDisposal appends a single disposal request to the app default disposals file.
func EncodeDisposal(req taxlot.DisposalRequest) subcommands.ExitStatus {
	filename := *disposalsFile
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening disposals file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := taxlot.EncodeDisposal(f, req); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to disposals file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended disposal to %s\n", filename)
	return subcommands.ExitSuccess
}

// EncodeLots writes the ledger to the app default lots file, replacing it.
func EncodeLots(ledger *taxlot.Ledger) error {
	f, err := os.OpenFile(*lotsFile, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("cannot open lots file %q for writing: %w", *lotsFile, err)
	}
	defer f.Close()

	return taxlot.EncodeLots(f, ledger)
}

// priceFlags binds the flags resolving a reference price, either given
// directly or extracted from a JSON quote document.
type priceFlags struct {
	price    float64
	currency string
	quote    string
	path     string
}

func (p *priceFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.price, "price", 0, "Reference unit price used to value remaining lots")
	f.StringVar(&p.currency, "c", "USD", "Currency of the reference price")
	f.StringVar(&p.quote, "quote", "", "Path to a JSON quote document to read the reference price from. Overrides -price.")
	f.StringVar(&p.path, "jsonpath", "", "JSONPath expression locating the price in the quote document")
}

// Resolve returns the reference price, zero when none was given.
func (p *priceFlags) Resolve() (taxlot.Money, error) {
	if p.quote != "" {
		doc, err := os.ReadFile(p.quote)
		if err != nil {
			return taxlot.Money{}, fmt.Errorf("cannot read quote document %q: %w", p.quote, err)
		}
		price, err := taxlot.ParseQuote(doc, p.path)
		if err != nil {
			return taxlot.Money{}, err
		}
		if price.Currency() == "" {
			price = price.Add(taxlot.M(0, p.currency))
		}
		return price, nil
	}
	if p.price == 0 {
		return taxlot.Money{}, nil
	}
	return taxlot.M(p.price, p.currency), nil
}

// periodFlags binds the flags shared by the commands that replay a tax period.
type periodFlags struct {
	year      int
	strategy  string
	threshold int
}

func (p *periodFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", taxlot.Today().Year(), "Tax year to process")
	f.StringVar(&p.strategy, "strategy", "fifo", "Lot consumption strategy (fifo, lifo, hifo, specific-id)")
	f.IntVar(&p.threshold, "threshold", 0, "Holding period threshold in days for long-term treatment (default 365)")
}

// Config assembles the calculator configuration from the flags and the app
// default disposals file.
func (p *periodFlags) Config() (taxlot.Config, error) {
	strategy, err := taxlot.ParseStrategy(p.strategy)
	if err != nil {
		return taxlot.Config{}, err
	}
	requests, err := DecodeDisposals()
	if err != nil {
		return taxlot.Config{}, err
	}
	return taxlot.Config{
		Year:          p.year,
		Strategy:      strategy,
		ThresholdDays: p.threshold,
		Disposals:     requests,
	}, nil
}

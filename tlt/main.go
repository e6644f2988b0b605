// tlt is the tax lot tracker command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/taxlot/cmd"
	"github.com/etnz/taxlot/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion registers the shell completion tree. When the shell asks for a
// completion, Complete answers and exits the process.
func completion() {
	jsonl := predict.Files("*.jsonl")
	strategies := predict.Set{"fifo", "lifo", "hifo", "specific-id"}
	periodFlags := map[string]complete.Predictor{
		"year":      predict.Something,
		"strategy":  strategies,
		"threshold": predict.Something,
	}
	priceFlags := map[string]complete.Predictor{
		"price":    predict.Something,
		"c":        predict.Set{"USD", "EUR"},
		"quote":    predict.Files("*.json"),
		"jsonpath": predict.Something,
	}

	topics, _ := docs.GetAllTopics()

	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"journal-file":   jsonl,
			"lots-file":      jsonl,
			"disposals-file": jsonl,
		},
		Sub: map[string]*complete.Command{
			"acquire":  {Flags: map[string]complete.Predictor{"c": predict.Set{"USD", "EUR"}}},
			"transfer": {},
			"dispose":  {Flags: map[string]complete.Predictor{"c": predict.Set{"USD", "EUR"}}},
			"tx":       {},
			"fmt":      {Flags: map[string]complete.Predictor{"o": jsonl}},
			"process":  {Flags: merge(periodFlags, map[string]complete.Predictor{"save": predict.Nothing})},
			"report":   {Flags: merge(periodFlags, priceFlags)},
			"simulate": {Flags: merge(periodFlags, map[string]complete.Predictor{"c": predict.Set{"USD", "EUR"}})},
			"optimize": {Flags: merge(periodFlags, priceFlags)},
			"lots":     {Flags: priceFlags},
			"check":    {},
			"topic":    {Args: predict.Set(topics)},
			"assist":   {},
		},
	}
	root.Complete("tlt")
}

// merge combines predictor maps, later maps winning on clashes.
func merge(maps ...map[string]complete.Predictor) map[string]complete.Predictor {
	out := make(map[string]complete.Predictor)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

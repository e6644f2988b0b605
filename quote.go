package taxlot

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// quotePricePaths are the paths tried, in order, to find a price in a quote
// document when the caller does not give an explicit one. They cover the
// usual shapes of exchange and aggregator responses.
var quotePricePaths = []string{
	"$.price",
	"$.last",
	"$.close",
	"$.data.price",
	"$.quote.price",
}

// quoteCurrencyPaths are the paths tried to find the quote currency.
var quoteCurrencyPaths = []string{
	"$.currency",
	"$.data.currency",
	"$.quote.currency",
}

// ParseQuote extracts a reference price from a JSON quote document. When
// path is empty, the usual quote shapes are tried in order. The currency is
// read from the document too; absent one, the money carries the weak ""
// currency and adopts whatever it is combined with.
func ParseQuote(doc []byte, path string) (Money, error) {
	var jobj any
	if err := json.Unmarshal(doc, &jobj); err != nil {
		return Money{}, fmt.Errorf("invalid quote document: %w", err)
	}

	paths := quotePricePaths
	if path != "" {
		paths = []string{path}
	}

	var val float64
	var lastErr error
	found := false
	for _, p := range paths {
		v, err := quoteFloat(jobj, p)
		if err != nil {
			lastErr = err
			continue
		}
		val, found = v, true
		break
	}
	if !found {
		return Money{}, fmt.Errorf("no price found in quote document (tried %s): %w", strings.Join(paths, ", "), lastErr)
	}
	if val <= 0 {
		return Money{}, fmt.Errorf("quote document holds a non-positive price %v", val)
	}

	cur := ""
	for _, p := range quoteCurrencyPaths {
		jval, err := jsonpath.Get(p, jobj)
		if err != nil {
			continue
		}
		if s, ok := jval.(string); ok && s != "" {
			cur = s
			break
		}
	}
	return M(val, cur), nil
}

// quoteFloat reads a single float at path inside the decoded document.
func quoteFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error reading %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return math.NaN(), fmt.Errorf("error reading %q: empty result", path)
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		// some APIs return the value as a string
		sval, ok := jval.(string)
		if !ok {
			return math.NaN(), fmt.Errorf("error reading %q: neither a float nor a string: %v", path, jval)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("error reading %q: invalid string %q: %w", path, sval, err)
		}
	}
	return val, nil
}

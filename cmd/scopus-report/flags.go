package main

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var viewFlags struct {
	preset    string
	yearFrom  int
	yearTo    int
	quartiles []string
	pctMin    float64
	pctMax    float64
	search    string
	sources   []string
	authors   []string
	sort      string
	order     string
}

func registerViewFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&viewFlags.preset, "preset", "", "Year preset: all, last5 or last10")
	f.IntVar(&viewFlags.yearFrom, "year-from", 0, "First year (inclusive)")
	f.IntVar(&viewFlags.yearTo, "year-to", 0, "Last year (inclusive)")
	f.StringSliceVar(&viewFlags.quartiles, "quartile", nil, "Quartiles to keep (Q1..Q4, None); repeatable or comma separated")
	f.Float64Var(&viewFlags.pctMin, "pct-min", 0, "Minimum 2024 percentile")
	f.Float64Var(&viewFlags.pctMax, "pct-max", 100, "Maximum 2024 percentile")
	f.StringVarP(&viewFlags.search, "query", "q", "", "Case-insensitive search over authors, title and source")
	f.StringArrayVar(&viewFlags.sources, "source", nil, "Exact source name; repeatable")
	f.StringArrayVar(&viewFlags.authors, "author", nil, "Author name fragment; repeatable")
	f.StringVar(&viewFlags.sort, "sort", "year", "Sort key: year, cited_by, percentile_2024, quartile, title, authors_full, source")
	f.StringVar(&viewFlags.order, "order", "desc", "Sort order: asc or desc")
}

// viewFlagValues maps the flags onto the HTTP query parameters so both
// surfaces share one parser. Only flags the user set are carried over.
func viewFlagValues() url.Values {
	v := url.Values{}
	changed := func(name string) bool {
		fl := rootCmd.PersistentFlags().Lookup(name)
		return fl != nil && fl.Changed
	}

	v.Set("preset", viewFlags.preset)
	v.Set("sort", viewFlags.sort)
	v.Set("order", viewFlags.order)
	v.Set("q", viewFlags.search)
	if changed("year-from") {
		v.Set("year_from", strconv.Itoa(viewFlags.yearFrom))
	}
	if changed("year-to") {
		v.Set("year_to", strconv.Itoa(viewFlags.yearTo))
	}
	if changed("pct-min") {
		v.Set("pct_min", strconv.FormatFloat(viewFlags.pctMin, 'f', -1, 64))
	}
	if changed("pct-max") {
		v.Set("pct_max", strconv.FormatFloat(viewFlags.pctMax, 'f', -1, 64))
	}
	if changed("quartile") {
		v["quartile"] = append([]string{""}, viewFlags.quartiles...)
	}
	for _, s := range viewFlags.sources {
		v.Add("source", s)
	}
	for _, a := range viewFlags.authors {
		v.Add("author", a)
	}
	return v
}

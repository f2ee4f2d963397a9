// Command artisantrend-vocab validates, summarises and dumps vocabulary tables
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/vocab"
)

const usage = `usage: artisantrend-vocab <command> [-file path]

commands:
  validate   load and compile the tables, exit non-zero on error
  summary    print table sizes and the catalog with its costs
  dump       print the effective tables as yaml

without -file the tables come from CORE_VOCAB_FILE or the embedded defaults
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	file := fs.String("file", "", "vocabulary yaml to read instead of the configured one")
	_ = fs.Parse(os.Args[2:])

	if err := run(os.Stdout, cmd, *file); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cmd, file string) error {
	switch cmd {
	case "validate", "summary", "dump":
	case "help", "-h", "--help":
		_, err := fmt.Fprint(w, usage)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	v, err := load(file)
	if err != nil {
		return err
	}
	switch cmd {
	case "validate":
		_, err = fmt.Fprintf(w, "ok: %s\n", v.Source())
	case "summary":
		err = summary(w, v)
	case "dump":
		var b []byte
		if b, err = v.Marshal(); err == nil {
			_, err = w.Write(b)
		}
	}
	return err
}

func load(file string) (*vocab.Vocab, error) {
	if file != "" {
		return vocab.LoadFile(file)
	}
	return vocab.Load()
}

func summary(w io.Writer, v *vocab.Vocab) error {
	st := v.Stats()
	costs := trend.CostsFrom(v)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "source\t%s\n", v.Source())
	fmt.Fprintf(tw, "catalog\t%d\n", st.Catalog)
	fmt.Fprintf(tw, "descriptive terms\t%d\n", st.Descriptive)
	fmt.Fprintf(tw, "product keywords\t%d\n", st.ProductKeywords)
	fmt.Fprintf(tw, "stopwords\t%d\n", st.Stopwords)
	fmt.Fprintf(tw, "boost tables\t%d\n", st.BoostTables)
	fmt.Fprintf(tw, "queries\t%d\n", st.Queries)
	fmt.Fprintf(tw, "subreddits\t%d\n", st.Subreddits)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PRODUCT\tUNIT\tMONTHLY\tYEARLY\tBOOST")
	for _, p := range v.Catalog {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%s\n",
			p, costs.Unit(p), costs.Monthly(p), costs.Yearly(p), strings.Join(v.BoostWords(p), ","))
	}
	return tw.Flush()
}

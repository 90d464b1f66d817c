// dropcolumn removes a column from a collector CSV by header name.
//
// Usage: dropcolumn input.csv output.csv [column]
//
// The column defaults to "other_links". When the header lacks the column the
// file is copied through unchanged.
package main

import (
	"fmt"
	"os"

	"github.com/channelscout/channelscout/internal/csvtool"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: dropcolumn input.csv output.csv [column]")
		os.Exit(1)
	}
	input, output := os.Args[1], os.Args[2]
	column := csvtool.DefaultDropColumn
	if len(os.Args) == 4 {
		column = os.Args[3]
	}

	in, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dropcolumn: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dropcolumn: %v\n", err)
		os.Exit(1)
	}

	if err := csvtool.DropColumn(in, out, column); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "dropcolumn: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "dropcolumn: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("cleaned data saved to %s\n", output)
}

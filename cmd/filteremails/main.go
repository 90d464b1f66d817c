// filteremails keeps only the CSV rows that contain at least one valid email
// address in any field.
//
// Usage: filteremails input.csv output.csv
//
// Exits 0 when at least one qualifying row was found, 1 otherwise.
package main

import (
	"fmt"
	"os"

	"github.com/channelscout/channelscout/internal/csvtool"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: filteremails input.csv output.csv")
		os.Exit(1)
	}
	input, output := os.Args[1], os.Args[2]

	in, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filteremails: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filteremails: %v\n", err)
		os.Exit(1)
	}

	kept, err := csvtool.FilterEmails(in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "filteremails: %v\n", err)
		os.Exit(1)
	}

	if kept == 0 {
		fmt.Println("no email addresses found in the input file")
		os.Exit(1)
	}
	fmt.Printf("found %d rows with email addresses, saved to %s\n", kept, output)
}

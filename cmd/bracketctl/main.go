// Command bracketctl works on bracket JSON files without a server: it seeds
// a bracket from a YAML team list, enters scores, advances rounds and prints
// reports.
package main

import (
	"log"
	"os"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

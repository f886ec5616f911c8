// This program drives a ledger node from the command line.
package main

import "github.com/ardanlabs/powledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}

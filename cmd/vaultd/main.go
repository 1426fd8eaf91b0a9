package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/delayvault"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// except the program name and the command name. Each command opens the
// state found in the home directory, applies a single operation and
// commits the result. Queries never commit.
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"addr":                  cmdAddr,
	"assets":                cmdAssets,
	"balance":               cmdBalance,
	"buyback":               cmdBuyBack,
	"checksum":              cmdChecksum,
	"consent":               cmdConsent,
	"deals":                 cmdDeals,
	"deposit":               cmdDeposit,
	"depositors":            cmdDepositors,
	"init":                  cmdInit,
	"min-delay":             cmdMinDelay,
	"pause":                 cmdPause,
	"release-deal":          cmdReleaseDeal,
	"set-active":            cmdSetActive,
	"set-bounds":            cmdSetBounds,
	"set-epoch":             cmdSetEpoch,
	"set-facility":          cmdSetFacility,
	"set-tiers":             cmdSetTiers,
	"set-whitelist":         cmdSetWhitelist,
	"swap-whitelist-filter": cmdSwapWhitelistFilter,
	"tiers":                 cmdTiers,
	"vault":                 cmdVault,
	"version":               cmdVersion,
	"whitelist-create":      cmdWhitelistCreate,
	"whitelist-set":         cmdWhitelistSet,
	"withdraw":              cmdWithdraw,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s manages time locked deposits.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> --help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, delayvault.Version())
	return nil
}

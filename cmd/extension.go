package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Environment variables passed to extensions, they carry the global flags.
const (
	EnvConfigFile = "TDASH_CONFIG"
	EnvOrdersFile = "TDASH_ORDERS_FILE"
	EnvSource     = "TDASH_SOURCE"
	EnvCurrency   = "TDASH_CURRENCY"
	EnvVerbose    = "TDASH_VERBOSE"
)

// ExtensionPrefix is the prefix of the external subcommand binaries.
const ExtensionPrefix = "tdash-"

// extensionEnv returns the environment of an extension: the current one
// plus the global flags.
func extensionEnv() []string {
	return append(os.Environ(),
		EnvConfigFile+"="+*configFile,
		EnvOrdersFile+"="+*ordersFile,
		EnvSource+"="+*sourceName,
		EnvCurrency+"="+*currency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)
}

// RunExtension attempts to find and execute an external tdash-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debugf("external command %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

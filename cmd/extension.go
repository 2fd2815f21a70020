package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables read by pgm and passed to its extensions.
const (
	EnvSessionFile = "PGM_SESSION_FILE"
	EnvVerbose     = "PGM_VERBOSE"
	EnvTestingNow  = "POKERGAME_TESTING_NOW"
)

// RunExtension attempts to find and execute an external pgm-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "pgm-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logger.Debug("no extension", "command", externalCmdName, "err", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvSessionFile+"="+*sessionFile)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

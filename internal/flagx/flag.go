// Package flagx lets several components parse their own subset of the
// command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnvVar = "LANGMATCH_CONFIG"

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Supported forms:
//
//	-c conf.json      flag and value as separate arguments
//	--config=x.json   flag and value joined with '='
//
// Flags listed in switches are boolean and never consume the next argument,
// so "-l positional" keeps only "-l".
func FilterArgs(args []string, allowed []string, switches ...string) []string {
	set := toSet(allowed)
	boolean := toSet(switches)

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, joined := strings.Cut(arg, "=")
		if _, ok := set[name]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if joined {
			continue
		}
		if _, ok := boolean[name]; ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// JSONConfigPath returns the config file path given via -c/-config, falling
// back to $LANGMATCH_CONFIG. An empty string means no JSON file.
func JSONConfigPath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	return path
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

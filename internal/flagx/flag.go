// Package flagx pre-scans command-line arguments for a handful of flags
// before the full command tree is parsed.
package flagx

import (
	"strings"

	"github.com/spf13/pflag"
)

// FilterArgs keeps only the arguments belonging to allowedFlags.
//
// Both "-c value" and "--config=value" forms are recognised. A separate value
// is taken only when the next argument does not start with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigPath returns the value of -c, -config or --config in args, or "" when
// none is given. The last occurrence wins.
func ConfigPath(args []string) string {
	filtered := FilterArgs(args, []string{"-c", "-config", "--config"})

	// pflag reads "-config" as a run of shorthands, so lift it to the long form.
	for i, a := range filtered {
		if a == "-config" || strings.HasPrefix(a, "-config=") {
			filtered[i] = "-" + a
		}
	}

	var config string
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&config, "config", "c", "", "Path to config file")
	fs.Usage = func() {}
	_ = fs.Parse(filtered)

	return config
}

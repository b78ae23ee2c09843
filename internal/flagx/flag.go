// Package flagx lets independent loaders pick their own flags out of the
// process arguments without tripping over flags that belong to someone else.
package flagx

import (
	"flag"
	"strings"
)

// normalize maps "--name" and "-name" onto the same key.
func normalize(name string) string {
	return "-" + strings.TrimLeft(name, "-")
}

// FilterArgs returns the subset of args that belong to allowedFlags, keeping
// each flag's value when it is passed as a separate argument.
//
// Both spellings are recognised for every allowed flag, so allowing "-c" also
// lets "--c" through. Supported forms:
//
//	-c conf.json
//	--config=conf.json
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[normalize(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if _, ok := allowed[normalize(name)]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[normalize(arg)]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given with -c or -config.
// It returns "" when neither flag is present.
func JsonConfigFlags(args []string) string {
	var config string

	filtered := FilterArgs(args, []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}

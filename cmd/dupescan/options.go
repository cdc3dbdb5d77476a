package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Options represents parsed command line arguments
type Options struct {
	Dir         string
	SizeSpec    string
	Recurse     bool
	Regex       string
	InvertRegex bool
	Precision   int // -1 when not given; the config default applies
	Verbose     int
	Debug       string
	ShowHelp    bool
}

// parseArguments parses the command line. Exactly one positional directory
// argument is required unless --help is requested.
func parseArguments(args []string) (*Options, error) {
	opts := &Options{
		Precision: -1,
	}

	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h", "help":
			opts.ShowHelp = true
			return opts, nil

		case "--size":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--size requires a size specification")
			}
			opts.SizeSpec = args[i]

		case "--recurse":
			opts.Recurse = true

		case "--regex":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--regex requires a pattern")
			}
			opts.Regex = args[i]

		case "--invert-regex":
			opts.InvertRegex = true

		case "--precision":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--precision requires a level (0, 1 or 2)")
			}
			level, err := strconv.Atoi(args[i])
			if err != nil || level < 0 || level > 2 {
				return nil, fmt.Errorf("invalid precision level %s: must be 0, 1 or 2", args[i])
			}
			opts.Precision = level

		case "--verbose", "-v":
			opts.Verbose++

		case "--debug":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--debug requires a comma-separated flag list")
			}
			opts.Debug = args[i]

		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return nil, fmt.Errorf("unknown option: %s", arg)
			}
			positional = append(positional, arg)
		}
	}

	if len(positional) != 1 {
		return nil, fmt.Errorf("exactly one directory argument is required")
	}
	opts.Dir = positional[0]

	if opts.InvertRegex && opts.Regex == "" {
		return nil, fmt.Errorf("--invert-regex requires --regex")
	}

	return opts, nil
}

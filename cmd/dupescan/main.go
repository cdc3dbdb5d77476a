package main

import (
	"fmt"
	"os"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	opts, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupescan: %v\n", err)
		os.Exit(1)
	}

	if opts.ShowHelp {
		showHelp()
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "dupescan: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: dupescan [options] directory\n")
	fmt.Fprintf(os.Stderr, "Try 'dupescan --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("dupescan - report groups of files with identical content\n\n")
	fmt.Printf("Usage: dupescan [options] directory\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  --size SPEC       Only consider files matching SPEC: -N (smaller than),\n")
	fmt.Printf("                    +N (larger than) or N (exactly N bytes), with optional\n")
	fmt.Printf("                    K/M/G suffix (e.g. -500, +200M, 500K)\n")
	fmt.Printf("  --recurse         Descend into subdirectories\n")
	fmt.Printf("  --regex PATTERN   Only consider files whose base name matches PATTERN\n")
	fmt.Printf("  --invert-regex    Invert the --regex match\n")
	fmt.Printf("  --precision N     Comparison strictness (default 2):\n")
	fmt.Printf("                      0  length only (fast, may report false positives)\n")
	fmt.Printf("                      1  length + content digest, with a head/tail window\n")
	fmt.Printf("                         pre-check for files larger than %s\n", dupescan.FormatSize(dupescan.LargeFileThreshold))
	fmt.Printf("                      2  length + exact byte comparison\n")
	fmt.Printf("  --verbose, -v     Increase verbosity (repeatable)\n")
	fmt.Printf("  --debug FLAGS     Enable debug flags (comma-separated)\n")
	fmt.Printf("  --help, -h        Show this help\n\n")

	fmt.Printf("OUTPUT:\n")
	fmt.Printf("  Each duplicate group is printed as the first-seen file's path followed\n")
	fmt.Printf("  by one line per duplicate, then a blank line. Files without duplicates\n")
	fmt.Printf("  produce no output.\n\n")

	fmt.Printf("FILES:\n")
	fmt.Printf("  A %s file at the scan root lists regex patterns (one per\n", dupescan.IgnoreFileName)
	fmt.Printf("  line, # comments) for paths to skip.\n")
	fmt.Printf("  Defaults live in the config file under the user config directory\n")
	fmt.Printf("  (override the location with DUPESCAN_CONFIG_DIR).\n\n")

	fmt.Printf("EXAMPLES:\n")
	fmt.Printf("  dupescan --recurse ~/photos                 # Byte-exact duplicates\n")
	fmt.Printf("  dupescan --precision 1 --size +200M /data   # Digest-compare large files\n")
	fmt.Printf("  dupescan --regex '.*\\.txt' --invert-regex . # Everything but .txt files\n")
}

func run(opts *Options) error {
	configDir := os.Getenv("DUPESCAN_CONFIG_DIR")
	if configDir == "" {
		var err error
		configDir, err = dupescan.DefaultConfigDir()
		if err != nil {
			return err
		}
	}

	config, err := dupescan.LoadConfig(configDir)
	if err != nil {
		return err
	}

	compareConfig := config.GetCompareConfig()
	performanceConfig := config.GetPerformanceConfig()
	verboseConfig := config.GetVerboseConfig()

	// Command line overrides config file defaults
	verboseLevel := verboseConfig.Level
	if opts.Verbose > 0 {
		verboseLevel = opts.Verbose
	}
	dupescan.SetVerboseLevel(verboseLevel)

	debug := verboseConfig.Debug
	if opts.Debug != "" {
		debug = opts.Debug
	}
	dupescan.SetDebugFlags(debug)

	precisionLevel := compareConfig.Precision
	if opts.Precision >= 0 {
		precisionLevel = opts.Precision
	}
	precision, err := dupescan.ParsePrecision(precisionLevel)
	if err != nil {
		return err
	}

	algorithm, err := dupescan.GetHashAlgorithm(compareConfig.Algorithm)
	if err != nil {
		return fmt.Errorf("invalid algorithm in config: %w", err)
	}

	readBuffer, err := dupescan.ParseHumanSize(performanceConfig.ReadBuffer)
	if err != nil {
		return fmt.Errorf("invalid read_buffer in config: %w", err)
	}

	threshold, err := dupescan.ParseHumanSize(compareConfig.LargeFileThreshold)
	if err != nil {
		return fmt.Errorf("invalid large_file_threshold in config: %w", err)
	}
	window, err := dupescan.ParseHumanSize(compareConfig.PartialWindow)
	if err != nil {
		return fmt.Errorf("invalid partial_window in config: %w", err)
	}
	if threshold < 2*window {
		return fmt.Errorf("large_file_threshold (%s) must be at least twice partial_window (%s)",
			dupescan.FormatSize(threshold), dupescan.FormatSize(window))
	}

	scanner := dupescan.NewScanner(opts.Dir, opts.Recurse)
	if opts.SizeSpec != "" {
		spec, err := dupescan.ParseSizeSpec(opts.SizeSpec)
		if err != nil {
			return err
		}
		scanner.Size = spec
	}
	if opts.Regex != "" {
		filter, err := dupescan.NewNameFilter(opts.Regex, opts.InvertRegex)
		if err != nil {
			return err
		}
		scanner.Name = filter
	}

	files, err := scanner.Scan()
	if err != nil {
		return err
	}

	dupescan.VerboseLog(1, "comparing %d files at %s precision with %s digests",
		len(files), precision, algorithm.Name)

	cache := dupescan.NewMetadataCache(algorithm, int(readBuffer))
	comparator := dupescan.NewComparator(precision, cache)
	comparator.LargeFileThreshold = threshold
	comparator.PartialWindow = window

	groups, err := dupescan.NewGrouper(comparator).FindDuplicates(files)
	if err != nil {
		return err
	}

	return dupescan.NewReportWriter(os.Stdout).WriteGroups(groups)
}

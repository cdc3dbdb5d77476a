package dupescan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

// Config represents the dupescan configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// CompareConfig represents comparison configuration
type CompareConfig struct {
	Precision          int    // Default precision tier (0=length, 1=checksum, 2=byte)
	Algorithm          string // Default digest algorithm
	LargeFileThreshold string // Size above which the window pre-check applies
	PartialWindow      string // Window size for the large-file pre-check
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	ReadBuffer string // Read buffer size for digests and byte comparison (default: "2M")
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// AllConfig represents all configuration options
type AllConfig struct {
	Compare     *CompareConfig
	Performance *PerformanceConfig
	Verbose     *VerboseConfig
}

// DefaultConfigDir returns the per-user configuration directory
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "dupescan"), nil
}

// LoadConfig loads configuration from configDir/config, creating the file
// with defaults when it does not exist
func LoadConfig(configDir string) (*Config, error) {
	configPath := filepath.Join(configDir, ConfigFileName)

	cfg := &Config{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	compareSection, err := c.ini.NewSection("compare")
	if err != nil {
		return fmt.Errorf("failed to create compare section: %w", err)
	}
	if _, err = compareSection.NewKey("precision", "2"); err != nil {
		return fmt.Errorf("failed to set default precision: %w", err)
	}
	if _, err = compareSection.NewKey("algorithm", "xxh64"); err != nil {
		return fmt.Errorf("failed to set default algorithm: %w", err)
	}
	if _, err = compareSection.NewKey("large_file_threshold", FormatSize(LargeFileThreshold)); err != nil {
		return fmt.Errorf("failed to set default large file threshold: %w", err)
	}
	if _, err = compareSection.NewKey("partial_window", FormatSize(PartialWindowSize)); err != nil {
		return fmt.Errorf("failed to set default partial window: %w", err)
	}

	performanceSection, err := c.ini.NewSection("performance")
	if err != nil {
		return fmt.Errorf("failed to create performance section: %w", err)
	}
	if _, err = performanceSection.NewKey("read_buffer", "2M"); err != nil {
		return fmt.Errorf("failed to set default read buffer: %w", err)
	}

	verboseSection, err := c.ini.NewSection("verbose")
	if err != nil {
		return fmt.Errorf("failed to create verbose section: %w", err)
	}
	if _, err = verboseSection.NewKey("level", "0"); err != nil {
		return fmt.Errorf("failed to set default verbose level: %w", err)
	}
	if _, err = verboseSection.NewKey("debug", ""); err != nil {
		return fmt.Errorf("failed to set default debug flags: %w", err)
	}

	return nil
}

// GetCompareConfig returns the comparison configuration
func (c *Config) GetCompareConfig() *CompareConfig {
	compareConfig := &CompareConfig{
		Precision:          2,       // fallback default
		Algorithm:          "xxh64", // fallback default
		LargeFileThreshold: FormatSize(LargeFileThreshold),
		PartialWindow:      FormatSize(PartialWindowSize),
	}

	if c.ini.HasSection("compare") {
		section := c.ini.Section("compare")
		if section.HasKey("precision") {
			if precision, err := section.Key("precision").Int(); err == nil {
				compareConfig.Precision = precision
			}
		}
		if section.HasKey("algorithm") {
			if algorithm := section.Key("algorithm").String(); algorithm != "" {
				compareConfig.Algorithm = algorithm
			}
		}
		if section.HasKey("large_file_threshold") {
			if threshold := section.Key("large_file_threshold").String(); threshold != "" {
				compareConfig.LargeFileThreshold = threshold
			}
		}
		if section.HasKey("partial_window") {
			if window := section.Key("partial_window").String(); window != "" {
				compareConfig.PartialWindow = window
			}
		}
	}

	return compareConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		ReadBuffer: "2M", // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("read_buffer") {
			if bufferSize := section.Key("read_buffer").String(); bufferSize != "" {
				performanceConfig.ReadBuffer = bufferSize
			}
		}
	}

	return performanceConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{
		Level: 0,  // fallback default
		Debug: "", // fallback default
	}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Compare:     c.GetCompareConfig(),
		Performance: c.GetPerformanceConfig(),
		Verbose:     c.GetVerboseConfig(),
	}
}

// SetComparePrecision sets the default precision tier
func (c *Config) SetComparePrecision(precision int) error {
	if _, err := ParsePrecision(precision); err != nil {
		return err
	}
	section := c.ini.Section("compare")
	section.Key("precision").SetValue(fmt.Sprintf("%d", precision))
	return nil
}

// SetCompareAlgorithm sets the default digest algorithm
func (c *Config) SetCompareAlgorithm(algorithm string) error {
	if _, err := GetHashAlgorithm(algorithm); err != nil {
		return err
	}
	section := c.ini.Section("compare")
	section.Key("algorithm").SetValue(algorithm)
	return nil
}

// Save writes the configuration back to disk
func (c *Config) Save() error {
	if err := c.ini.SaveTo(c.configPath); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

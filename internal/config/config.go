// Package config loads and persists fman's per-profile configuration:
// a single "Name=Value" style document (rendered as YAML via viper)
// plus the profile-scoped filesystem layout spec.md §4.11 describes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds every option the core consults, grouped by the
// subsystem that owns it.
type Config struct {
	Listing   ListingConfig   `mapstructure:"listing"`
	Selection SelectionConfig `mapstructure:"selection"`
	Jump      JumpConfig      `mapstructure:"jump"`
	History   HistoryConfig   `mapstructure:"history"`
	Parser    ParserConfig    `mapstructure:"parser"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Safety    SafetyConfig    `mapstructure:"safety"`
}

// ListingConfig controls directory scanning, sorting, and display.
type ListingConfig struct {
	ShowHidden      bool   `mapstructure:"show_hidden"`
	LightMode       bool   `mapstructure:"light_mode"`
	MaxFiles        int    `mapstructure:"max_files"`
	Icons           bool   `mapstructure:"icons"`
	Columns         bool   `mapstructure:"columns"`
	Pager           bool   `mapstructure:"pager"`
	SortMethod      string `mapstructure:"sort_method"`
	SortReverse     bool   `mapstructure:"sort_reverse"`
	FoldersFirst    bool   `mapstructure:"folders_first"`
	CaseInsensitive bool   `mapstructure:"case_insensitive_sort"`
}

// SelectionConfig controls the shared selection box.
type SelectionConfig struct {
	SharedSelbox bool `mapstructure:"shared_selbox"`
}

// JumpConfig controls the frecency database's ceiling/floor.
type JumpConfig struct {
	RankCeiling float64 `mapstructure:"rank_ceiling"`
	RankFloor   float64 `mapstructure:"rank_floor"`
}

// HistoryConfig bounds the command history.
type HistoryConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// ParserConfig controls the §4.8 expander's optional behaviors.
type ParserConfig struct {
	TrashAsRm       bool `mapstructure:"trash_as_rm"`
	ExpandBookmarks bool `mapstructure:"expand_bookmarks"`
	Autocd          bool `mapstructure:"autocd"`
	AutoOpen        bool `mapstructure:"auto_open"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// SafetyConfig gates interactive confirmation prompts before
// irreversible operations.
type SafetyConfig struct {
	ConfirmPermanentDelete bool `mapstructure:"confirm_permanent_delete"`
}

// Paths resolves every file the profile's filesystem layout names
// (spec.md §4.8 "Filesystem layout"): one struct assembled once at
// startup and threaded wherever a subsystem needs its backing file.
type Paths struct {
	ConfigDir   string // <cfg>
	ColorsDir   string // <cfg>/colors
	PluginsDir  string // <cfg>/plugins
	Keybindings string // <cfg>/keybindings

	ProfileDir string // <cfg>/profiles/<name>
	RCFile     string // clifmrc-equivalent
	History    string
	Bookmarks  string
	DirHist    string
	Jump       string
	MimeList   string
	Selbox     string
	LastFile   string
}

// ResolvePaths builds a Paths for profile under the standard
// XDG_CONFIG_HOME-aware fman config directory.
func ResolvePaths(profile string) Paths {
	cfgDir := configRoot()
	profDir := filepath.Join(cfgDir, "profiles", profile)
	return Paths{
		ConfigDir:   cfgDir,
		ColorsDir:   filepath.Join(cfgDir, "colors"),
		PluginsDir:  filepath.Join(cfgDir, "plugins"),
		Keybindings: filepath.Join(cfgDir, "keybindings"),

		ProfileDir: profDir,
		RCFile:     filepath.Join(profDir, "fmanrc"),
		History:    filepath.Join(profDir, "history.cfm"),
		Bookmarks:  filepath.Join(profDir, "bookmarks.cfm"),
		DirHist:    filepath.Join(profDir, "dirhist.cfm"),
		Jump:       filepath.Join(profDir, "jump.cfm"),
		MimeList:   filepath.Join(profDir, "mimelist.cfm"),
		Selbox:     filepath.Join(profDir, "selbox"),
		LastFile:   filepath.Join(profDir, ".last"),
	}
}

func configRoot() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fman")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fman"
	}
	return filepath.Join(home, ".config", "fman")
}

// EnsureDirs creates the directories under p that must exist before
// any subsystem opens a file within them.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.ColorsDir, p.PluginsDir, p.ProfileDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", d, err)
		}
	}
	return nil
}

// Load reads rcFile via viper, falling back to built-in defaults for
// anything the file doesn't set, and creates the file with those
// defaults if it is missing entirely.
func Load(rcFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(rcFile)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(rcFile), 0o755); err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			var cfg Config
			if err := v.Unmarshal(&cfg); err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			if err := Save(rcFile, &cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", rcFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listing.show_hidden", false)
	v.SetDefault("listing.light_mode", false)
	v.SetDefault("listing.max_files", 0)
	v.SetDefault("listing.icons", false)
	v.SetDefault("listing.columns", true)
	v.SetDefault("listing.pager", true)
	v.SetDefault("listing.sort_method", "name")
	v.SetDefault("listing.sort_reverse", false)
	v.SetDefault("listing.folders_first", true)
	v.SetDefault("listing.case_insensitive_sort", true)

	v.SetDefault("selection.shared_selbox", true)

	v.SetDefault("jump.rank_ceiling", 100000.0)
	v.SetDefault("jump.rank_floor", 10.0)

	v.SetDefault("history.max_entries", 5000)

	v.SetDefault("parser.trash_as_rm", false)
	v.SetDefault("parser.expand_bookmarks", true)
	v.SetDefault("parser.autocd", true)
	v.SetDefault("parser.auto_open", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	v.SetDefault("safety.confirm_permanent_delete", true)
}

// Save writes cfg to rcFile as YAML.
func Save(rcFile string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(rcFile), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(rcFile, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", rcFile, err)
	}
	return nil
}

// Edit opens rcFile in $EDITOR (falling back to a short list of
// common editors) and returns once the editor exits; the caller is
// responsible for reloading afterward.
func Edit(rcFile string, run func(name string, args ...string) error) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		for _, candidate := range []string{"nano", "vi", "vim"} {
			if _, err := os.Stat("/usr/bin/" + candidate); err == nil {
				editor = candidate
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("config: no editor found; set $EDITOR")
	}
	return run(editor, rcFile)
}

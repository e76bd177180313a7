package defs

// File and directory names written into a provisioned project.
const (
	// ManifestFile is the mode manifest written at the project root.
	ManifestFile = ".modekitmodes"

	// ToolDir is the hidden directory holding provisioned rule files.
	ToolDir = ".modekit"

	// SharedRulesDir is the directory under ToolDir holding generic rules
	// shared by every selected mode.
	SharedRulesDir = "rules"

	// ModeRulesDirPrefix prefixes the per-mode rules directory name; the
	// mode slug is appended (e.g. rules-code).
	ModeRulesDirPrefix = "rules-"
)

// Names used by the user override catalog under the home directory.
const (
	// UserConfigDir is the per-user modekit directory, relative to $HOME.
	UserConfigDir = ".modekit"

	// UserCatalogFile is the user override catalog document inside
	// UserConfigDir.
	UserCatalogFile = "custom-modes.yaml"

	// UserRulesDir is the rule file tree inside UserConfigDir.
	UserRulesDir = "rules"
)

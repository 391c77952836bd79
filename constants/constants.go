package constants

const (
	// AppDirName is the directory name used under the XDG config and data
	// homes for all files this application owns.
	AppDirName = "duxiu"

	HistoryFile  = "history.json"
	SettingsFile = "settings.yml"

	BackupFilePrefix = "duxiu-backup-"
)

const (
	ActionQuit       = "quit"
	ActionSave       = "save"
	ActionUndo       = "undo"
	ActionRedo       = "redo"
	ActionEsc        = "esc"
	ActionCalculator = "calculator"
	ActionTrends     = "trends"
	ActionAdvisor    = "advisor"
	ActionSettings   = "settings"
	ActionGlobalHelp = "globalHelp"
	ActionNew        = "new"
	ActionDelete     = "delete"
	ActionSearch     = "search"
)

// AllActions is used for rendering the keyboard shortcut listing on the help
// page.
var AllActions = []string{
	ActionQuit,
	ActionSave,
	ActionUndo,
	ActionRedo,
	ActionEsc,
	ActionCalculator,
	ActionTrends,
	ActionAdvisor,
	ActionSettings,
	ActionGlobalHelp,
	ActionNew,
	ActionDelete,
	ActionSearch,
}

// DefaultMappings maps tcell event names to actions. There is no user
// keybinding layer - these are the application's bindings.
var DefaultMappings = map[string]string{
	"Ctrl+C": ActionQuit,
	"Ctrl+S": ActionSave,
	"Ctrl+Z": ActionUndo,
	"Ctrl+Y": ActionRedo,
	"Esc":    ActionEsc,
	"F1":     ActionGlobalHelp,
	"F2":     ActionCalculator,
	"F3":     ActionTrends,
	"F4":     ActionAdvisor,
	"F5":     ActionSettings,
	"Ctrl+N": ActionNew,
	"Ctrl+D": ActionDelete,
	"Ctrl+F": ActionSearch,
}

const ResetStyle = "[-:-:-:-]"

const (
	UndoBufferMaxLength = 100

	// ChartBarMaxWidth is the widest an index bar on the trends chart can be,
	// in cells.
	ChartBarMaxWidth = 40

	// ChartIndexCap bounds bar scaling so a single zero-expense month (index
	// 100) does not flatten every other bar. Display text still shows the
	// uncapped index.
	ChartIndexCap = 3.0
)

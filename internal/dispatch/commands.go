package dispatch

import "fman/internal/jump"

// builtinCommands enumerates the full verb table (spec.md §4.9),
// grouped by category. Names and aliases match the expander's
// built-in substitution rules (fastback, pinned-dir, sel, ranges,
// ELNs) and the trash-as-rm rewrite in internal/parser.
func builtinCommands() []Command {
	return []Command{
		// Navigation
		{Name: "cd", Category: "navigation", Handler: cmdCd},
		{Name: "back", Aliases: []string{"b"}, Category: "navigation", Handler: cmdBack},
		{Name: "forth", Aliases: []string{"f"}, Category: "navigation", Handler: cmdForth},
		{Name: "ws", Category: "navigation", Handler: cmdWorkspace},
		{Name: ",", Category: "navigation", Handler: cmdPinnedJump},
		{Name: "pin", Category: "navigation", Handler: cmdPin},
		{Name: "unpin", Category: "navigation", Handler: cmdUnpin},
		{Name: "j", Category: "navigation", Handler: cmdJump(jump.ModeAll)},
		{Name: "jp", Category: "navigation", Handler: cmdJump(jump.ModeAncestors)},
		{Name: "jc", Category: "navigation", Handler: cmdJump(jump.ModeDescendants)},
		{Name: "jo", Category: "navigation", Handler: cmdJumpOrdinal},
		{Name: "jl", Category: "navigation", Handler: cmdJumpList},
		{Name: "je", Category: "navigation", Handler: cmdJumpEdit},
		{Name: "bh", Category: "navigation", Handler: cmdDirHistory},
		{Name: "fh", Category: "navigation", Handler: cmdDirHistory},
		{Name: "p", Aliases: []string{"pr", "pp"}, Category: "navigation", Handler: cmdProperties},

		// Listing
		{Name: "rf", Aliases: []string{"refresh"}, Category: "listing", Handler: cmdRefresh},
		{Name: "rl", Aliases: []string{"reload"}, Category: "listing", Handler: cmdReload},
		{Name: "ls", Category: "listing", Handler: cmdLs},
		{Name: "cl", Aliases: []string{"columns"}, Category: "listing", Handler: cmdColumns},
		{Name: "pg", Aliases: []string{"pager"}, Category: "listing", Handler: cmdPager},
		{Name: "icons", Category: "listing", Handler: cmdIcons},
		{Name: "cs", Aliases: []string{"colorschemes"}, Category: "listing", Handler: cmdColors},
		{Name: "hf", Aliases: []string{"hidden"}, Category: "listing", Handler: cmdToggleHidden},
		{Name: "lm", Category: "listing", Handler: cmdLightMode},
		{Name: "mf", Category: "listing", Handler: cmdMaxFiles},
		{Name: "ft", Aliases: []string{"filter"}, Category: "listing", Handler: cmdFilter},
		{Name: "st", Aliases: []string{"sort"}, Category: "listing", Handler: cmdSort},

		// Selection
		{Name: "s", Aliases: []string{"sel"}, Category: "selection", Handler: cmdSelect},
		{Name: "ds", Aliases: []string{"desel"}, Category: "selection", Handler: cmdDeselect},
		{Name: "sb", Aliases: []string{"selbox"}, Category: "selection", Handler: cmdSelbox},

		// File operations
		{Name: "o", Aliases: []string{"open"}, Category: "fileops", Handler: cmdOpen},
		{Name: "c", Aliases: []string{"cp"}, Category: "fileops", Handler: cmdCopy},
		{Name: "m", Aliases: []string{"mv"}, Category: "fileops", Handler: cmdMove},
		{Name: "l", Aliases: []string{"ln"}, Category: "fileops", Handler: cmdLink},
		{Name: "md", Aliases: []string{"mkdir"}, Category: "fileops", Handler: cmdMkdir},
		{Name: "r", Aliases: []string{"rm"}, Category: "fileops", Handler: cmdRemove},
		{Name: "te", Category: "fileops", Handler: cmdToggleExec},
		{Name: "t", Aliases: []string{"trash", "tr"}, Category: "fileops", Handler: cmdTrash},
		{Name: "u", Aliases: []string{"untrash"}, Category: "fileops", Handler: cmdUntrash},
		{Name: "ac", Aliases: []string{"ad"}, Category: "fileops", Handler: cmdArchive},
		{Name: "mm", Aliases: []string{"mime"}, Category: "fileops", Handler: cmdMime},
		{Name: "le", Category: "fileops", Handler: cmdEditLink},
		{Name: "bl", Category: "fileops", Handler: cmdBatchLink},
		{Name: "br", Aliases: []string{"bulk"}, Category: "fileops", Handler: cmdBulkRename},
		{Name: "v", Aliases: []string{"vv", "paste"}, Category: "fileops", Handler: cmdPaste},
		{Name: "exp", Aliases: []string{"export"}, Category: "fileops", Handler: cmdExport},

		// Config / profile
		{Name: "edit", Category: "config", Handler: cmdEdit},
		{Name: "kb", Aliases: []string{"keybinds"}, Category: "config", Handler: cmdKeybinds},
		{Name: "opener", Category: "config", Handler: cmdOpener},
		{Name: "shell", Category: "config", Handler: cmdShell},
		{Name: "pf", Aliases: []string{"profile"}, Category: "config", Handler: cmdProfile},
		{Name: "alias", Category: "config", Handler: cmdAlias},
		{Name: "actions", Category: "config", Handler: cmdActions},

		// Meta
		{Name: "history", Category: "meta", Handler: cmdHistory},
		{Name: "log", Category: "meta", Handler: cmdLog},
		{Name: "msg", Category: "meta", Handler: cmdMsg},
		{Name: "cmd", Category: "meta", Handler: cmdCmd},
		{Name: "help", Category: "meta", Handler: cmdHelp},
		{Name: "ver", Category: "meta", Handler: cmdVer},
		{Name: "cc", Category: "meta", Handler: cmdColors},
		{Name: "mp", Category: "meta", Handler: cmdMountpoints},
		{Name: "fs", Category: "meta", Handler: cmdFreeSoftware},
		{Name: "tips", Category: "meta", Handler: cmdTips},
		{Name: "splash", Category: "meta", Handler: cmdSplash},
		{Name: "bonus", Category: "meta", Handler: cmdBonus},
		{Name: "x", Category: "meta", Handler: cmdNewInstance},
		{Name: "X", Category: "meta", Handler: cmdNewInstance},
		{Name: "q", Aliases: []string{"quit", "exit"}, Category: "meta", Handler: cmdQuit},
		{Name: "Q", Category: "meta", Handler: cmdQuitCD},
	}
}

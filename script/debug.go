package script

import "strings"

// debugState holds the process-global debugger state of spec.md §9's
// "pervasive global state": the current break level, the current
// nesting level, and the SID of the script currently being sourced.
// Embedded in Sourcer rather than left as package
// variables, per SPEC_FULL.md §5's "context handle" treatment.
type debugState struct {
	breakLevel  int // -1 means debugging is off / "cont" was issued
	nestingLevel int
	currentSID  int
}

// Prompter is the interactive collaborator do_debug reads `>` prompted
// commands from; the embedding editor implements it (spec.md §4.4
// do_debug, §6 external interfaces — typeahead ownership belongs to
// the editor, not the core).
type Prompter interface {
	// ReadDebugLine prompts with p and returns the line the user typed,
	// or ok=false on EOF/interrupt.
	ReadDebugLine(prompt string) (line string, ok bool)
}

// dbgBreakpoint is called when sourcing_lnum has crossed the cached
// breakpoint line; it arms debug mode so the NEXT executed command
// enters DoDebug (spec.md §4.4 get_source_line step 5). The caller
// recomputes the next breakpoint.
func (s *Sourcer) dbgBreakpoint(name string, lnum int) {
	s.debug.breakLevel = s.debug.nestingLevel
}

// DbgCheckBreakpoint is called before executing each ex-command
// (spec.md §4.4 dbg_check_breakpoint). skipped marks a command that
// will not actually run because it's inside an inactive :if/:while
// branch, in which case debug mode is not entered even if a breakpoint
// would otherwise fire.
func (s *Sourcer) DbgCheckBreakpoint(prompter Prompter, skipped bool) {
	if skipped {
		return
	}
	if s.debug.breakLevel >= 0 && s.debug.nestingLevel <= s.debug.breakLevel {
		s.DoDebug(prompter, "")
	}
}

// debugCommands are the recognized abbreviations, longest-tail-match
// first so "cont" isn't mistaken for a prefix of something else
// (spec.md §4.4 do_debug).
var debugCommands = []string{"continue", "next", "step", "finish", "quit", "interrupt"}

// DoDebug implements do_debug (spec.md §4.4): an interactive REPL that
// reads ex-command lines from prompter with prompt ">", recognizing
// abbreviated debugger commands, and otherwise dispatching the line as
// an ordinary ex-command with instrumentation disabled.
func (s *Sourcer) DoDebug(prompter Prompter, cmd string) {
	savedLevel := s.debug.breakLevel
	s.debug.nestingLevel++
	defer func() { s.debug.nestingLevel-- }()

	for {
		line, ok := prompter.ReadDebugLine(">")
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch matchDebugCommand(trimmed) {
		case "continue":
			s.debug.breakLevel = -1
			return
		case "next":
			s.debug.breakLevel = s.debug.nestingLevel - 1
			return
		case "step":
			s.debug.breakLevel = 1 << 30 // break at any nesting
			return
		case "finish":
			s.debug.breakLevel = s.debug.nestingLevel - 2
			return
		case "quit":
			s.debug.breakLevel = -1
			return
		case "interrupt":
			s.debug.breakLevel = s.debug.nestingLevel
			continue
		default:
			// Execute with instrumentation disabled so the debug
			// command itself doesn't re-enter do_debug.
			disabled := s.debug.breakLevel
			s.debug.breakLevel = -1
			if s.Dispatch != nil {
				_ = s.Dispatch.DoCmdline(trimmed, nil, nil, s.debug.nestingLevel)
			}
			s.debug.breakLevel = disabled
		}
	}
	s.debug.breakLevel = savedLevel
}

// matchDebugCommand resolves an abbreviated command to its canonical
// name via minimum-unambiguous-prefix matching, or "" if cmd is not a
// prefix of exactly one recognized command (treated as an ordinary
// ex-command instead).
func matchDebugCommand(cmd string) string {
	if cmd == "cont" {
		return "continue"
	}
	match := ""
	for _, full := range debugCommands {
		if strings.HasPrefix(full, cmd) {
			if match != "" {
				return ""
			}
			match = full
		}
	}
	return match
}

// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - StreamFormatter: Reforms raw finder output into listing entries
//   - ProcessSession: Owns the single finder process of a session
//   - CompletionHandler: Flushes the tail and appends the summary line
//   - SearchSession: Search state plus process session, the TUI's port
//   - HistoryService: Records and lists finished runs
//   - SettingsService: Typed settings over the config store
//   - EntryActionService: Opens and copies listing entries
//
// Services are pure Go with no external dependencies apart from
// uuid for run IDs.
package services

// Package log provides squidlog's leveled, categorized logging façade.
//
// # Overview
//
// Callers log through a Logger bound to a Category. Every message passes two
// independent gates: the category gate (category override, else the
// manager's default level) and then, per registered Sink, the sink gate
// (sink override, else the manager's default level). A message that clears
// the category gate is rendered once with the manager's TextFormatter; each
// sink that clears its own gate either prints that text or, if it renders
// records itself, its own text passed through its filter.
//
// Quick start
//
//	m := log.NewManager()
//	console := m.Configure(log.NewConsoleSink())[0]
//	m.SetDefaultLevel(log.InfoLevel)
//	m.SetSinkLevel(log.ErrorLevel, console)
//
//	network := log.NewCategory("Network")
//	network.SetLevel(log.WarnLevel)
//	l := m.Logger(network)
//	l.Error("connection refused")
//
// # Rendering
//
// The default line layout is
//
//	<symbol> <level> [<category>] <yyyy-MM-dd HH:mm:ss.SSS> <file>(<line>) <function> - <payload>
//
// Symbols come from the active SymbolStrategy and are resolved at render
// time, so swapping the strategy changes every later line.
//
// # Sink thresholds
//
// A sink's threshold falls back to the manager default, never to the
// category's threshold. A sink override therefore only ever narrows or
// widens relative to the default, and a category that suppresses a message
// suppresses it for every sink regardless of their overrides.
//
// # Interop
//
// NewSlogHandler routes log/slog records into a Logger and RedirectStdLog
// routes the standard library logger.
package log

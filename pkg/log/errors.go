package log

// ConfigurationError reports a misconfigured manager. Configuration calls
// panic with a *ConfigurationError; logging calls never do.
type ConfigurationError struct {
	Op  string
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "squidlog: " + e.Op + ": " + e.Msg
}

func configPanic(op, msg string) {
	panic(&ConfigurationError{Op: op, Msg: msg})
}

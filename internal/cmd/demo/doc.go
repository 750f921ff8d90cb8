// Package demo provides the `squid demo` and `squid emit` commands.
//
// demo replays the reference configuration: a console sink with its own
// "<level>:<payload>" rendering and a filter masking "hello", a default
// level of info, a sink threshold of error and letter symbols. Only the
// error and fatal lines reach the terminal:
//
//	squid demo
//	error:<FILTERED> world.
//	fatal:<FILTERED> world.
//
// emit logs one message through the configured sinks, which makes it handy
// for checking a config file:
//
//	squid emit --config squid.yaml --category net/http --level warn "slow upstream"
package demo

// Package logger provides structured logging for the call-governor, backed
// by zerolog.
//
// A single global logger is available through GetLogger; components accept
// a Logger so tests can inject NewTestLogger and assert on captured
// messages.
package logger

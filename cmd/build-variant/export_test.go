package main

var (
	Run      = run
	ExitCode = exitCode

	OsArgs   = &osArgs
	OsStdout = &osStdout
	OsStderr = &osStderr
)

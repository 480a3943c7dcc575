package main

// Exit codes reported by the colophon CLI.
const (
	ExitSuccess    = 0  // Success, including a declined download
	ExitError      = 1  // General error, declined overwrite, missing input
	ExitNoSnapshot = 99 // No snapshot archive discoverable online
)

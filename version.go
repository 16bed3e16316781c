package main

// Overridden at build time with -ldflags "-X main._version=...".
var _version = "dev"

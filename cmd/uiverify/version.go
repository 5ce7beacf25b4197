package main

// Version is the uiverify release. Set at build time with
// -ldflags "-X main.Version=1.2.3".
var Version = "0.1.0"

// Command cosmic-screenshot captures a screenshot through the XDG desktop
// portal, moves it into place, and reports the outcome with a desktop
// notification. Running the binary with no subcommand performs a capture;
// history and config subcommands manage the surrounding state.
package main

// Package cli implements the wifimon command-line interface.
//
// Each Cobra command delegates to a function in this package that loads the
// config, builds its dependencies, and hands off to the internal packages.
//
// # Command Structure
//
//	wifimon run                 - Run the status daemon (foreground or as a service)
//	wifimon status [--json]     - Sample and classify the link once
//	wifimon watch               - Live terminal view of the link
//	wifimon init                - Create a config file
//	wifimon service <action>    - Install, uninstall, start, stop or query the service
//	wifimon version             - Print version information
//	wifimon completion <shell>  - Generate shell completion
//
// # Flag Handling
//
// Global flags (--config, --verbose, --debug, --no-color) are defined on the
// root command. Command-specific flags live next to each command.
//
// # Dependencies
//
// deps.go builds the runner, sampler, classifier and trigger from config in
// one place, so run, status and watch sample the link the same way.
package cli

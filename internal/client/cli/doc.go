// Package cli implements the lumen command-line client.
//
// Commands are built with cobra from NewRootCommand. Connection settings
// come from defaults, an optional JSON file (--config) and the persistent
// flags. The access token and admin key are kept in a local SQLite cache
// so they survive between invocations.
//
//	lumen login --token <jwt>
//	lumen progress --tool chatbot
//	lumen suggestions status <id> accepted
//
// "lumen shell" runs the same commands in a loop over a single connection.
package cli

// Package cli provides the command-line interface for cardsd.
//
// Commands:
//   - serve: run the cards HTTP API in the foreground
//   - validate: check the JSON data files for schema and reference errors
//   - list: print formatted cards as a table or JSON
//   - seed: import the JSON data files into the SQLite database
//   - version: show build information
//
// Settings are resolved by the cliconfig package; flags given on the command
// line take precedence over environment variables and config files. A .env
// file in the working directory is loaded before configuration is resolved,
// without overriding variables that are already set.
package cli

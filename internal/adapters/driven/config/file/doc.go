// Package file provides the TOML configuration store of Thot.
//
// The file lives at ~/.thot/config.toml (the directory is overridable with
// THOT_HOME). Nested tables are flattened to dot keys, so
//
//	[ingest]
//	chunk_size = 2000
//
// is read as "ingest.chunk_size". Every key can be overridden by an
// environment variable named THOT_ followed by the upper-cased key with dots
// replaced by underscores, e.g. THOT_INGEST_CHUNK_SIZE. A .env file in the
// working directory is loaded into the environment first.
package file

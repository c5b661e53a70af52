// Package google provides shared infrastructure for Google API connectors.
//
// It contains:
//   - Credentials and the client options they translate to
//   - Service factories for the Drive and Docs APIs
//   - Error mapping from googleapi errors to the shared HTTP error types
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	opts, err := google.Credentials{File: path}.ClientOptions()
//	drv, err := google.NewDriveService(ctx, opts...)
//
// # Scopes
//
// Connectors only read, so credentials are requested with:
//   - https://www.googleapis.com/auth/documents.readonly
//   - https://www.googleapis.com/auth/drive.readonly
package google

// Package github implements the issue tracker and wiki connector for GitHub
// repositories.
//
// # Architecture
//
// The connector follows the driven port pattern defined in [driven.Connector].
// It comprises the following components:
//
//   - Connector: runs the import and update phases for one source at a time
//   - Client: wraps go-github with rate limiting and error mapping
//   - Repo: resolves "owner/repo" and repository URLs
//
// # Authentication
//
// The source token is sent as an OAuth2 bearer token. Personal access tokens
// and OAuth tokens both work; private repositories need the 'repo' scope.
//
// # Content
//
// Issues are listed with the issues endpoint; pull requests, which the
// endpoint also returns, are skipped. Comments are appended to the issue body
// in creation order.
//
// Wiki pages live in the separate {repo}.wiki git repository. They are read
// from its tree: every markdown blob becomes one document whose external id
// is the file path without its extension.
//
// # Enterprise
//
// When the source has a base URL other than github.com, requests go to
// {base}/api/v3/ as GitHub Enterprise Server expects.
package github

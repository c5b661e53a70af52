// Package gitlab implements the issue tracker and wiki connector for GitLab
// projects, using the REST API v4.
//
// Issues are identified by their project-level iid and wiki pages by their
// slug. Issue tracker sources import both issues and wiki pages; wiki
// sources import wiki pages only.
package gitlab

// Package redmine implements the issue tracker connector for Redmine.
//
// Authentication uses the X-Redmine-API-Key header. Issue journals with
// notes become the comment transcript of a document. Redmine sources have
// no wiki import.
package redmine

package domain

import (
	"fmt"
	"time"
)

// SourceKind identifies which variant of Source applies.
type SourceKind string

// Source variants.
const (
	// SourceKindIssueTracker is a ticket system with notes and a project wiki.
	SourceKindIssueTracker SourceKind = "issue-tracker"

	// SourceKindWikiPages is the wiki of a project, without its tickets.
	SourceKindWikiPages SourceKind = "wiki-pages"

	// SourceKindWordProcessorDoc is a single word-processor document or a folder of them.
	SourceKindWordProcessorDoc SourceKind = "word-processor-doc"

	// SourceKindManual holds documents authored directly in Thot.
	SourceKindManual SourceKind = "manual"
)

// IsValid returns true if the kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindIssueTracker, SourceKindWikiPages, SourceKindWordProcessorDoc, SourceKindManual:
		return true
	default:
		return false
	}
}

// Flavour names the external system behind a remote source.
type Flavour string

// Supported flavours.
const (
	FlavourGitLab     Flavour = "gitlab"
	FlavourRedmine    Flavour = "redmine"
	FlavourGitHub     Flavour = "github"
	FlavourGoogleDocs Flavour = "google-docs"
)

// RemoteConfig holds the connection parameters of a tracker or wiki.
type RemoteConfig struct {
	// Flavour selects the API dialect.
	Flavour Flavour

	// BaseURL is the instance root, e.g. "https://gitlab.example.com".
	// Empty means the public service for flavours that have one.
	BaseURL string

	// Project is the project path, identifier or "owner/repo".
	Project string

	// Token is the access token sent with every request.
	Token string
}

// DocumentConfig holds the location of a word-processor document or folder.
type DocumentConfig struct {
	// URL is a document link, a folder link or a bare identifier.
	URL string
}

// Source is a configured external origin.
// Exactly one of IssueTracker, Wiki or WordProcessor is set, matching Kind;
// Manual sources carry no configuration.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// ProjectID links to the owning Project.
	ProjectID string

	// Name is the human-readable name for this source.
	Name string

	// Kind selects the variant.
	Kind SourceKind

	IssueTracker  *RemoteConfig
	Wiki          *RemoteConfig
	WordProcessor *DocumentConfig

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// LastUpdatedAt is stamped after every successful sync.
	LastUpdatedAt *time.Time
}

// Flavour returns the API dialect of the variant, or "" for manual sources.
func (s *Source) Flavour() Flavour {
	switch s.Kind {
	case SourceKindIssueTracker:
		if s.IssueTracker != nil {
			return s.IssueTracker.Flavour
		}
	case SourceKindWikiPages:
		if s.Wiki != nil {
			return s.Wiki.Flavour
		}
	case SourceKindWordProcessorDoc:
		return FlavourGoogleDocs
	}
	return ""
}

// Remote returns the remote configuration of tracker and wiki sources.
func (s *Source) Remote() *RemoteConfig {
	switch s.Kind {
	case SourceKindIssueTracker:
		return s.IssueTracker
	case SourceKindWikiPages:
		return s.Wiki
	default:
		return nil
	}
}

// Validate checks that exactly the configuration of Kind is present.
func (s *Source) Validate() error {
	if !s.Kind.IsValid() {
		return fmt.Errorf("%w: unknown source kind %q", ErrInvalidInput, s.Kind)
	}

	set := 0
	for _, present := range []bool{s.IssueTracker != nil, s.Wiki != nil, s.WordProcessor != nil} {
		if present {
			set++
		}
	}

	switch s.Kind {
	case SourceKindManual:
		if set != 0 {
			return fmt.Errorf("%w: manual source must not carry configuration", ErrInvalidInput)
		}
		return nil
	case SourceKindIssueTracker:
		if s.IssueTracker == nil || set != 1 {
			return fmt.Errorf("%w: issue tracker source needs exactly its tracker configuration", ErrInvalidInput)
		}
		return s.IssueTracker.validate()
	case SourceKindWikiPages:
		if s.Wiki == nil || set != 1 {
			return fmt.Errorf("%w: wiki source needs exactly its wiki configuration", ErrInvalidInput)
		}
		if s.Wiki.Flavour == FlavourRedmine {
			return fmt.Errorf("%w: redmine wikis are not supported", ErrInvalidInput)
		}
		return s.Wiki.validate()
	default:
		if s.WordProcessor == nil || set != 1 {
			return fmt.Errorf("%w: document source needs exactly its document configuration", ErrInvalidInput)
		}
		if s.WordProcessor.URL == "" {
			return fmt.Errorf("%w: document url is required", ErrInvalidInput)
		}
		return nil
	}
}

func (c *RemoteConfig) validate() error {
	switch c.Flavour {
	case FlavourGitLab, FlavourRedmine, FlavourGitHub:
	default:
		return fmt.Errorf("%w: unknown flavour %q", ErrInvalidInput, c.Flavour)
	}
	if c.Project == "" {
		return fmt.Errorf("%w: project is required", ErrInvalidInput)
	}
	if c.BaseURL == "" && c.Flavour != FlavourGitHub {
		return fmt.Errorf("%w: base url is required for %s", ErrInvalidInput, c.Flavour)
	}
	return nil
}

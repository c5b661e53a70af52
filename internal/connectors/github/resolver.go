package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/IQ2i/thot/internal/core/domain"
)

// PublicHost is the web root of github.com.
const PublicHost = "https://github.com"

// Repo identifies a repository.
type Repo struct {
	// Host is the web root used for links.
	Host  string
	Owner string
	Name  string
}

// ParseRepo accepts "owner/repo" or a repository URL such as
// "https://github.com/owner/repo".
func ParseRepo(cfg *domain.RemoteConfig) (Repo, error) {
	host := strings.TrimRight(cfg.BaseURL, "/")
	if host == "" {
		host = PublicHost
	}

	ref := strings.TrimSpace(cfg.Project)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := url.Parse(ref)
		if err != nil {
			return Repo{}, fmt.Errorf("%w: not a repository url: %q", domain.ErrInvalidInput, ref)
		}
		host = u.Scheme + "://" + u.Host
		ref = u.Path
	}

	parts := strings.Split(strings.Trim(ref, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("%w: expected owner/repo, got %q", domain.ErrInvalidInput, cfg.Project)
	}
	return Repo{Host: host, Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}, nil
}

// IsPublic reports whether the repository is hosted on github.com.
func (r Repo) IsPublic() bool {
	return r.Host == PublicHost
}

// WikiName is the name of the git repository holding the wiki.
func (r Repo) WikiName() string {
	return r.Name + ".wiki"
}

// WikiURL returns the web link of a wiki page.
func (r Repo) WikiURL(slug string) string {
	return fmt.Sprintf("%s/%s/%s/wiki/%s", r.Host, r.Owner, r.Name, url.PathEscape(slug))
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

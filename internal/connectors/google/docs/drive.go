package docs

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/IQ2i/thot/internal/connectors/google"
)

// Drive MIME types.
const (
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
	MimeTypeFolder    = "application/vnd.google-apps.folder"
)

// PageSize is the number of files requested per folder listing call.
const PageSize = 100

type metadata struct {
	Name       string
	MimeType   string
	CreatedAt  time.Time
	ModifiedAt *time.Time
}

// session holds the API services of one sync run.
type session struct {
	drive     *drive.Service
	docs      *docsAPI
	driveRate *google.RateLimiter
}

func (s *session) metadata(ctx context.Context, id string) (*metadata, error) {
	if err := s.driveRate.Wait(ctx); err != nil {
		return nil, err
	}
	file, err := s.drive.Files.Get(id).
		Fields("id, name, mimeType, createdTime, modifiedTime").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	s.driveRate.Observe(err)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", id, google.WrapError(err))
	}

	md := &metadata{Name: file.Name, MimeType: file.MimeType}
	if t, err := time.Parse(time.RFC3339, file.CreatedTime); err == nil {
		md.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, file.ModifiedTime); err == nil {
		md.ModifiedAt = &t
	}
	return md, nil
}

// listFolder returns the documents below a folder, depth first. A failing
// listing call ends the walk and the documents found so far are returned
// together with the error.
func (s *session) listFolder(ctx context.Context, rootID string) ([]string, error) {
	var ids []string
	visited := map[string]bool{rootID: true}
	stack := []string{rootID}

	for len(stack) > 0 {
		folderID := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var subfolders []string
		pageToken := ""
		for {
			if err := s.driveRate.Wait(ctx); err != nil {
				return ids, err
			}
			call := s.drive.Files.List().
				Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
				Fields("nextPageToken, files(id, name, mimeType)").
				PageSize(PageSize).
				SupportsAllDrives(true).
				IncludeItemsFromAllDrives(true).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			list, err := call.Do()
			s.driveRate.Observe(err)
			if err != nil {
				return ids, fmt.Errorf("list folder %s: %w", folderID, google.WrapError(err))
			}

			for _, f := range list.Files {
				switch f.MimeType {
				case MimeTypeFolder:
					if !visited[f.Id] {
						visited[f.Id] = true
						subfolders = append(subfolders, f.Id)
					}
				case MimeTypeGoogleDoc:
					ids = append(ids, f.Id)
				}
			}

			pageToken = list.NextPageToken
			if pageToken == "" {
				break
			}
		}

		// Push in reverse so the first subfolder is visited next.
		for i := len(subfolders) - 1; i >= 0; i-- {
			stack = append(stack, subfolders[i])
		}
	}
	return ids, nil
}

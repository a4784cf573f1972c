package service

import "context"

// MediaStorage hosts uploaded files and hands back a public URL.
type MediaStorage interface {
	// Upload copies the file at localPath to the host and returns its public
	// URL. It does not remove localPath.
	Upload(ctx context.Context, localPath string) (string, error)
}

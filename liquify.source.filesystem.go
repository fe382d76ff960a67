package liquify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FilesystemSource reads snippets from files under a root directory.
// The snippet name is the file path relative to the root, using forward
// slashes: {% include "shared/header.liquid" %} reads
// <root>/shared/header.liquid. Names resolving outside the root are
// rejected.
//
// The filesystem is abstracted through afero, so tests can point a source
// at an in-memory filesystem.
type FilesystemSource struct {
	fs   afero.Fs
	root string
}

// FilesystemSourceDriver is the driver for creating FilesystemSource instances.
type FilesystemSourceDriver struct{}

func init() {
	RegisterSourceDriver(SourceDriverFilesystem, &FilesystemSourceDriver{})
}

// Open creates a new FilesystemSource instance.
// The connection string is the root directory path.
func (d *FilesystemSourceDriver) Open(connectionString string) (IncludeSource, error) {
	return NewFilesystemSource(connectionString)
}

// NewFilesystemSource creates a snippet source over the OS filesystem
// rooted at the given directory.
func NewFilesystemSource(root string) (*FilesystemSource, error) {
	return NewFilesystemSourceFs(afero.NewOsFs(), root)
}

// NewFilesystemSourceFs creates a snippet source over an arbitrary afero
// filesystem rooted at the given directory.
func NewFilesystemSourceFs(fs afero.Fs, root string) (*FilesystemSource, error) {
	if root == StringValueEmpty {
		return nil, NewInvalidSnippetNameError(root)
	}

	return &FilesystemSource{
		fs:   fs,
		root: filepath.Clean(root),
	}, nil
}

// Root returns the source's root directory.
func (s *FilesystemSource) Root() string {
	return s.root
}

// Include returns the contents of the file named by the snippet.
func (s *FilesystemSource) Include(name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return StringValueEmpty, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return StringValueEmpty, NewSnippetNotFoundError(name)
		}
		return StringValueEmpty, NewSourceError(ErrMsgSnippetRead, name, err)
	}

	return string(data), nil
}

// resolve maps a snippet name to a file path under the root, rejecting
// names that would escape it.
func (s *FilesystemSource) resolve(name string) (string, error) {
	if name == StringValueEmpty {
		return StringValueEmpty, NewInvalidSnippetNameError(name)
	}

	rel := filepath.FromSlash(name)
	if filepath.IsAbs(rel) {
		return StringValueEmpty, NewSnippetOutsideRootError(name)
	}

	path := filepath.Join(s.root, rel)

	// Join cleans the result, so an escaping name resolves to a path whose
	// root-relative form starts with "..". A prefix check on the joined
	// path would wrongly reject relative roots like ".".
	back, err := filepath.Rel(s.root, path)
	if err != nil || back == ParentDirName || strings.HasPrefix(back, ParentDirName+string(filepath.Separator)) {
		return StringValueEmpty, NewSnippetOutsideRootError(name)
	}

	return path, nil
}

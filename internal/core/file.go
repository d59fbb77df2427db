package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julien-sobczak/nbfmt/internal/databricks"
)

// File abstracts where a notebook lives. Implementations read and write the
// whole content at once: a notebook is either rewritten in full or left
// untouched, never partially updated.
type File interface {
	// Path identifies the file in reports and error messages.
	Path() string
	// Read returns the full current content.
	Read() (string, error)
	// Write replaces the full content.
	Write(content string) error
}

/* Local files */

type LocalFile struct {
	path string
}

func NewLocalFile(path string) *LocalFile {
	return &LocalFile{path: path}
}

func (f *LocalFile) Path() string {
	return f.path
}

func (f *LocalFile) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *LocalFile) Write(content string) error {
	return os.WriteFile(f.path, []byte(content), 0644)
}

/* Remote notebooks */

type RemoteNotebook struct {
	path   string
	client *databricks.Client
}

func NewRemoteNotebook(path string, client *databricks.Client) *RemoteNotebook {
	return &RemoteNotebook{path: path, client: client}
}

func (f *RemoteNotebook) Path() string {
	return f.path
}

// Read returns the notebook source. Databricks strips the trailing newline
// when exporting; add it back, otherwise every remote notebook perpetually
// reports a one-line diff.
func (f *RemoteNotebook) Read() (string, error) {
	content, err := f.client.Export(f.path)
	if err != nil {
		return "", err
	}
	return content + "\n", nil
}

func (f *RemoteNotebook) Write(content string) error {
	return f.client.Import(f.path, content)
}

// ResolvePaths expands the given local paths into absolute file paths.
// Directories are recursively added, similarly to how black operates.
func ResolvePaths(paths []string) ([]string, error) {
	pending := make([]string, len(paths))
	copy(pending, paths)

	var filePaths []string
	for len(pending) > 0 {
		path := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		path, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}

		stat, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("no such file or directory: %s", path)
		}

		if stat.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				pending = append(pending, filepath.Join(path, entry.Name()))
			}
		} else {
			filePaths = append(filePaths, path)
		}
	}
	return filePaths, nil
}

// ResolveRemotePaths expands workspace paths into notebook paths, walking
// directories and repos recursively.
func ResolveRemotePaths(client *databricks.Client, paths []string) ([]string, error) {
	pending := make([]string, 0, len(paths))
	for _, path := range paths {
		pending = append(pending, client.ResolvePath(path))
	}

	var notebookPaths []string
	for len(pending) > 0 {
		path := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		objects, err := client.List(path)
		if err != nil {
			return nil, err
		}
		for _, object := range objects {
			switch object.ObjectType {
			case databricks.ObjectNotebook:
				notebookPaths = append(notebookPaths, object.Path)
			case databricks.ObjectDirectory, databricks.ObjectRepo:
				pending = append(pending, object.Path)
			}
		}
	}
	return notebookPaths, nil
}

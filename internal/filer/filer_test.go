package filer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() SourceFile {
	return SourceFile{
		Package: "com.example.users",
		Name:    "UserAsynchronousClient",
		Content: []byte("package com.example.users;\n"),
	}
}

func TestSourceFile_RelPath(t *testing.T) {
	file := sample()
	assert.Equal(t, "com/example/users/UserAsynchronousClient.java", file.RelPath(""))
	assert.Equal(t, "com/example/users/UserAsynchronousClient.gen.java", file.RelPath(".gen.java"))
	assert.Equal(t, "com.example.users.UserAsynchronousClient", file.QualifiedName())

	file.Package = ""
	assert.Equal(t, "UserAsynchronousClient.java", file.RelPath(".java"))
	assert.Equal(t, "UserAsynchronousClient", file.QualifiedName())
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"com/example/A.java", false},
		{"A.java", false},
		{"", true},
		{"/abs/A.java", true},
		{"C:/A.java", true},
		{"../A.java", true},
		{"com/../../A.java", true},
		{"com//A.java", true},
		{"./A.java", true},
		{"com/a..b/A.java", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSourceRoot(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name         string
		file         string
		pkg          string
		wantRoot     string
		wantMirrored bool
	}{
		{"mirrored", filepath.Join("src", "main", "java", "com", "example", "A.java"), "com.example", filepath.Join("src", "main", "java"), true},
		{"relative package dir", filepath.Join("com", "example", "A.java"), "com.example", ".", true},
		{"absolute root", sep + filepath.Join("com", "example", "A.java"), "com.example", sep, true},
		{"default package", filepath.Join("src", "A.java"), "", "src", true},
		{"not mirrored", filepath.Join("src", "clients", "A.java"), "com.example", filepath.Join("src", "clients"), false},
		{"partial suffix", filepath.Join("src", "xcom", "example", "A.java"), "com.example", filepath.Join("src", "xcom", "example"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, mirrored := SourceRoot(tt.file, tt.pkg)
			assert.Equal(t, tt.wantRoot, root)
			assert.Equal(t, tt.wantMirrored, mirrored)
		})
	}
}

func TestFilesystemFiler_WritesBelowRoot(t *testing.T) {
	root := t.TempDir()
	f := NewFilesystemFiler(root, ".java")

	written, err := f.CreateSource(context.Background(), sample())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "com", "example", "users", "UserAsynchronousClient.java"), written)
	content, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, "package com.example.users;\n", string(content))

	info, err := os.Stat(written)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(written))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFilesystemFiler_ExistingTarget(t *testing.T) {
	generated := func(existing []byte) bool {
		return strings.HasPrefix(string(existing), "// generated")
	}

	tests := []struct {
		name        string
		existing    string
		replaceable func([]byte) bool
		wantErr     bool
	}{
		{"generated file replaced", "// generated\nold", generated, false},
		{"hand-written file kept", "package com.example.users;\n\npublic interface UserAsynchronousClient {}\n", generated, true},
		{"nothing replaceable", "// generated\nold", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			f := NewFilesystemFiler(root, ".java")
			f.Replaceable = tt.replaceable

			file := sample()
			target, err := f.Target(file)
			require.NoError(t, err)
			require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
			require.NoError(t, os.WriteFile(target, []byte(tt.existing), 0644))

			file.Content = []byte("// generated\nnew")
			_, err = f.CreateSource(context.Background(), file)

			content, readErr := os.ReadFile(target)
			require.NoError(t, readErr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSourceExists)
				assert.Equal(t, tt.existing, string(content))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "// generated\nnew", string(content))
		})
	}
}

func TestFilesystemFiler_BesideOrigin(t *testing.T) {
	root := t.TempDir()
	f := NewFilesystemFiler("", ".java")

	file := sample()
	file.Origin = filepath.Join(root, "src", "com", "example", "users", "UserBlockingClient.java")
	written, err := f.CreateSource(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "com", "example", "users", "UserAsynchronousClient.java"), written)

	file.Origin = filepath.Join(root, "flat", "UserBlockingClient.java")
	written, err = f.CreateSource(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "flat", "UserAsynchronousClient.java"), written)
}

func TestFilesystemFiler_Errors(t *testing.T) {
	root := t.TempDir()
	f := NewFilesystemFiler(root, ".java")

	_, err := f.CreateSource(context.Background(), SourceFile{Package: "a"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.CreateSource(ctx, sample())
	assert.ErrorIs(t, err, context.Canceled)

	blocker := filepath.Join(root, "com")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not a directory"), 0644))
	_, err = f.CreateSource(context.Background(), sample())
	assert.Error(t, err)
}

func TestMemoryFiler(t *testing.T) {
	m := NewMemoryFiler(".java")
	file := sample()

	rel, err := m.CreateSource(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "com/example/users/UserAsynchronousClient.java", rel)

	file.Content[0] = 'X'
	assert.Equal(t, "package com.example.users;\n", string(m.Get(rel)), "stored content is a copy")

	_, err = m.CreateSource(context.Background(), SourceFile{Name: "Other"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Other.java", rel}, m.Paths())
	assert.Len(t, m.Files(), 2)
	assert.Nil(t, m.Get("missing.java"))

	m.Reset()
	assert.Empty(t, m.Paths())
}

func TestMemoryFiler_ZeroValue(t *testing.T) {
	var m MemoryFiler
	rel, err := m.CreateSource(context.Background(), sample())
	require.NoError(t, err)
	assert.NotNil(t, m.Get(rel))
}

func TestMemoryFiler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryFiler("").CreateSource(ctx, sample())
	assert.ErrorIs(t, err, context.Canceled)
}

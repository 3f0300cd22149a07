package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig(t *testing.T) {
	// /tmp/
	//   project/ (formpost.yaml)
	//     subdir/
	//       nested/
	//   empty/
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(projectDir, ConfigFileName)
	if err := os.WriteFile(want, []byte("store:\n  kind: fs\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: projectDir},
		{name: "Start in Subdir", startPath: subDir},
		{name: "Start Nested Deeply", startPath: nestedDir},
		{name: "Not Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindConfig(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && filepath.Clean(got) != filepath.Clean(want) {
				t.Errorf("FindConfig() = %v, want %v", got, want)
			}
		})
	}
}

func TestFindConfig_IgnoresDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ConfigFileName), 0755); err != nil {
		t.Fatal(err)
	}
	if got, err := FindConfig(dir); err == nil && filepath.Dir(got) == dir {
		t.Errorf("directory named %s must not match", ConfigFileName)
	}
}

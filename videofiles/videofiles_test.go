package videofiles

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"a.mp4", true},
		{"dir/b.MKV", true},
		{"c.webm", true},
		{"d.ogv", true},
		{"e.avi", true},
		{"f.mov", true},
		{"g.mp3", false},
		{"mp4", false},
		{"h.mp4.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsVideoFile(tt.path))
		})
	}

	assert.True(t, IsVideoExtension(".MP4"))
	assert.True(t, IsVideoExtension("webm"))
	assert.False(t, IsVideoExtension("gif"))
}

func TestFindVideos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp4"), "b")
	writeFile(t, filepath.Join(dir, "a.MKV"), "a")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "nested", "deep", "c.webm"), "c")

	paths, err := FindVideos(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.MKV"),
		filepath.Join(dir, "b.mp4"),
		filepath.Join(dir, "nested", "deep", "c.webm"),
	}, paths)
}

func TestFindVideos_Errors(t *testing.T) {
	_, err := FindVideos(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "a.mp4")
	writeFile(t, file, "a")
	_, err = FindVideos(file)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "a.mp4")
	writeFile(t, video, "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")

	paths, err := Resolve(video)
	require.NoError(t, err)
	assert.Equal(t, []string{video}, paths)

	paths, err = Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{video}, paths)

	_, err = Resolve(filepath.Join(dir, "b.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a video file")
}

func TestFilterExtension(t *testing.T) {
	paths := []string{"a.mp4", "b.MP4", "c.mkv", "d.webm"}

	assert.Equal(t, []string{"c.mkv", "d.webm"}, FilterExtension(paths, "mp4"))
	assert.Equal(t, []string{"a.mp4", "b.MP4", "d.webm"}, FilterExtension(paths, ".mkv"))
	assert.Empty(t, FilterExtension(nil, "mp4"))
}

func TestSample(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}

	t.Run("same seed same sample", func(t *testing.T) {
		assert.Equal(t, Sample(paths, 42, 3), Sample(paths, 42, 3))
	})

	t.Run("distinct members", func(t *testing.T) {
		picked := Sample(paths, 7, 5)
		assert.ElementsMatch(t, paths, picked)
	})

	t.Run("k clamped", func(t *testing.T) {
		assert.Len(t, Sample(paths, 1, 50), len(paths))
	})

	t.Run("zero k", func(t *testing.T) {
		assert.Empty(t, Sample(paths, 1, 0))
	})

	t.Run("random k within bounds", func(t *testing.T) {
		for seed := int64(1); seed < 20; seed++ {
			picked := Sample(paths, seed, -1)
			assert.LessOrEqual(t, len(picked), len(paths))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Sample(nil, 0, -1))
	})
}

func TestRandomHex(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]*$`)

	for _, length := range []int{1, 2, 15, 16, 33, 100} {
		got := RandomHex(length)
		assert.Len(t, got, 2*(length/2))
		assert.Regexp(t, hex, got)
	}

	assert.NotEqual(t, RandomHex(16), RandomHex(16))
}

func TestRandomName(t *testing.T) {
	tests := []struct {
		name     string
		appendTo string
		pattern  string
	}{
		{"random only", "", `^[0-9a-f]{16}\.mp4$`},
		{"prefix keeps stem after", "prefix", `^[0-9a-f]{16}_holiday\.mp4$`},
		{"suffix keeps stem before", "suffix", `^holiday_[0-9a-f]{16}\.mp4$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RandomName("/videos/holiday.mp4", tt.appendTo, "_", 16)

			assert.Equal(t, "/videos", filepath.Dir(got))
			assert.Regexp(t, regexp.MustCompile(tt.pattern), filepath.Base(got))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fi:l*e/p\"a?t>h|.t<xt", "filepath.txt"},
		{"  spaced name.mp4  ", "spaced name.mp4"},
		{"trailing.", "trailing"},
		{"tab\there.mp4", "tabhere.mp4"},
		{"CON.mp4", "_CON.mp4"},
		{"clean.mkv", "clean.mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}

	assert.Equal(t, filepath.Join("/videos", "abc.mp4"), SanitizedName("/videos/a?b*c.mp4"))
}

func TestCopyInto(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.mp4")
	writeFile(t, src, "payload")
	dir := filepath.Join(t.TempDir(), "out", "nested")

	dst, err := CopyInto(src, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.mp4"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = os.Stat(src)
	assert.NoError(t, err, "source must remain")

	_, err = CopyInto(src, filepath.Dir(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in")
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp4")
	dst := filepath.Join(dir, "b.mp4")
	writeFile(t, src, "payload")

	require.NoError(t, Move(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	other := filepath.Join(dir, "c.mp4")
	writeFile(t, other, "other")
	err = Move(other, dst)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "refusing to overwrite"))
}

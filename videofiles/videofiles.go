// Package videofiles finds, samples, names and moves video files on disk.
package videofiles

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bitfield/script"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// VideoExtensions lists the recognised video extensions, without the dot.
var VideoExtensions = []string{"mp4", "mkv", "ogv", "webm", "avi", "mov"}

var videoPattern = regexp.MustCompile(`(?i)\.(` + strings.Join(VideoExtensions, "|") + `)$`)

// IsVideoExtension reports whether ext, with or without the dot, is a video
// extension. The match is case-insensitive.
func IsVideoExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, v := range VideoExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// IsVideoFile reports whether path has a video extension.
func IsVideoFile(path string) bool {
	return videoPattern.MatchString(path)
}

// FindVideos returns every video file below dir, sorted.
func FindVideos(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}

	paths, err := script.FindFiles(dir).MatchRegexp(videoPattern).Slice()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}

	sort.Strings(paths)
	return paths, nil
}

// Resolve returns path itself when it is a video file, or every video below
// it when it is a directory.
func Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if info.IsDir() {
		return FindVideos(path)
	}
	if !IsVideoFile(path) {
		return nil, errors.Errorf("%s is not a video file (extensions: %s)", path, strings.Join(VideoExtensions, ", "))
	}
	return []string{path}, nil
}

// FilterExtension drops paths already carrying ext. The comparison ignores
// case and the leading dot.
func FilterExtension(paths []string, ext string) []string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	var kept []string
	for _, p := range paths {
		if strings.ToLower(strings.TrimPrefix(filepath.Ext(p), ".")) != ext {
			kept = append(kept, p)
		}
	}
	return kept
}

// Sample picks up to k distinct paths at random, in random order. A zero seed
// seeds from the clock. A negative k picks a random count in [0, len(paths)].
// k larger than len(paths) is clamped.
func Sample(paths []string, seed int64, k int) []string {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if k < 0 {
		k = rng.Intn(len(paths) + 1)
	}
	if k > len(paths) {
		k = len(paths)
	}

	picked := make([]string, 0, k)
	for _, i := range rng.Perm(len(paths))[:k] {
		picked = append(picked, paths[i])
	}
	return picked
}

// RandomHex returns length hex characters rounded down to an even count,
// drawn from random UUIDs.
func RandomHex(length int) string {
	n := 2 * (length / 2)

	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return b.String()[:n]
}

// RandomName returns a sibling of path named with length random hex
// characters. appendTo is "prefix", "suffix" or "" and decides where the
// original stem is kept, joined by separator.
func RandomName(path, appendTo, separator string, length int) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	random := RandomHex(length)

	var name string
	switch appendTo {
	case "prefix":
		name = random + separator + stem
	case "suffix":
		name = stem + separator + random
	default:
		name = random
	}
	return filepath.Join(dir, name+ext)
}

var (
	invalidFilenameChars = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f\x7f]`)
	reservedNames        = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
)

// SanitizedName returns a sibling of path whose base name has characters
// invalid on common filesystems removed.
func SanitizedName(path string) string {
	return filepath.Join(filepath.Dir(path), SanitizeFilename(filepath.Base(path)))
}

// SanitizeFilename removes invalid characters, trims surrounding spaces and
// trailing dots, and prefixes reserved device names with an underscore.
func SanitizeFilename(name string) string {
	sanitized := invalidFilenameChars.ReplaceAllString(name, "")
	sanitized = strings.TrimRight(strings.TrimSpace(sanitized), ". ")
	if reservedNames.MatchString(sanitized) {
		sanitized = "_" + sanitized
	}
	return sanitized
}

// CopyInto copies src into dir, keeping its base name, and returns the
// destination path. dir is created if missing.
func CopyInto(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WithStack(err)
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if same, err := samePath(src, dst); err == nil && same {
		return "", errors.Errorf("%s is already in %s", src, dir)
	}

	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Move renames src to dst, falling back to copy and delete across devices.
// An existing dst is never overwritten.
func Move(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return errors.Errorf("refusing to overwrite %s", dst)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return errors.WithStack(os.Remove(src))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WithStack(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to copy %s", src)
	}
	return errors.WithStack(out.Close())
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

// Package redaction removes personally-identifying fields from report data
// before rendering, driven by named profiles of boolean flags, and scrubs
// secret-looking strings from patch text.
package redaction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Flags lists every report field that can be redacted.
type Flags struct {
	RepoInfo               bool `json:"repo_info"`
	PRNumber               bool `json:"pr_number"`
	MetadataAuthor         bool `json:"metadata_author"`
	MetadataCreatedAt      bool `json:"metadata_created_at"`
	MetadataBranches       bool `json:"metadata_branches"`
	MetadataClosedMergedBy bool `json:"metadata_closed_merged_by"`
	MetadataClosedMergedAt bool `json:"metadata_closed_merged_at"`
	DescriptionLinks       bool `json:"pr_description_links"`
	CommitAuthor           bool `json:"commit_author"`
	CommitCommitter        bool `json:"commit_committer"`
	CommitDate             bool `json:"commit_date"`
	CommitSHA              bool `json:"commit_sha"`
}

// Profile is a named, described set of redaction flags.
type Profile struct {
	Description string `json:"description"`
	Redactions  Flags  `json:"redactions"`
}

// DefaultProfile redacts everything that identifies a person or a point in
// time, which is the common requirement for evidence exports.
func DefaultProfile() Profile {
	return Profile{
		Description: "Redact authors, timestamps, branches, and commit SHAs",
		Redactions: Flags{
			MetadataAuthor:         true,
			MetadataCreatedAt:      true,
			MetadataBranches:       true,
			MetadataClosedMergedBy: true,
			MetadataClosedMergedAt: true,
			CommitAuthor:           true,
			CommitCommitter:        true,
			CommitDate:             true,
			CommitSHA:              true,
		},
	}
}

// ProfileInfo pairs a profile filename with its description, for listings.
type ProfileInfo struct {
	Filename    string
	Description string
}

// ListProfiles returns the JSON profiles in dir, sorted by filename.
// Unreadable or malformed files are skipped.
func ListProfiles(dir string) ([]ProfileInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles dir: %w", err)
	}

	var infos []ProfileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		profile, err := LoadProfile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		description := profile.Description
		if description == "" {
			description = "No description"
		}
		infos = append(infos, ProfileInfo{Filename: entry.Name(), Description: description})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Filename < infos[j].Filename })
	return infos, nil
}

// LoadProfile reads a profile from a JSON file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return profile, nil
}

// SaveProfile writes a profile as indented JSON, creating dir if needed.
func SaveProfile(dir, filename string, profile Profile) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create profiles dir: %w", err)
	}

	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write profile: %w", err)
	}
	return path, nil
}

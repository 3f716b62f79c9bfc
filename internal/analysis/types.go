package analysis

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mkrause/gitcoupling/internal/coupling"
	"github.com/mkrause/gitcoupling/internal/git"
	"github.com/mkrause/gitcoupling/internal/risk"
	"github.com/mkrause/gitcoupling/internal/tree"
)

// NestedCodeStructure is the serialized tree handed to the visualization
// layer: the repository root's children in order. The field names below are
// the contract that layer depends on field-for-field.
type NestedCodeStructure []TreeNode

// TreeNode is either a directory or a file entry; exactly one side is set.
type TreeNode struct {
	Directory *DirectoryNode
	File      *FileNode
}

// DirectoryNode aggregates the files and subdirectories beneath it.
type DirectoryNode struct {
	DirectoryPath string              `json:"directoryPath"`
	Children      NestedCodeStructure `json:"children"`
}

// FileNode carries one file's full statistics record.
type FileNode struct {
	FilePath                string          `json:"filePath"`
	LinesOfCode             int             `json:"linesOfCode"`
	GitHistory              []CommitRecord  `json:"gitHistory"`
	Contributors            []string        `json:"contributors"`
	RecentContributors      []string        `json:"recentContributors"`
	RecentlyChangedTogether []CoChangeEntry `json:"recentlyChangedTogether"`
	RiskTier                risk.Tier       `json:"riskTier"`
}

// CommitRecord serializes one commit with an absolute epoch-millis
// timestamp, keeping the consumer timezone-agnostic.
type CommitRecord struct {
	Hash                 string   `json:"hash"`
	AuthorName           string   `json:"authorName"`
	TimestampEpochMillis int64    `json:"timestampEpochMillis"`
	ChangedFiles         []string `json:"changedFiles"`
	Message              string   `json:"message"`
}

// CoChangeEntry is one co-change partner with its count.
type CoChangeEntry struct {
	FilePath string `json:"filePath"`
	Count    int    `json:"count"`
}

// MarshalJSON flattens the node to whichever side is set.
func (n TreeNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.Directory != nil:
		return json.Marshal(n.Directory)
	case n.File != nil:
		return json.Marshal(n.File)
	default:
		return nil, fmt.Errorf("tree node has neither directory nor file")
	}
}

// UnmarshalJSON recognizes the node kind by its discriminating field.
func (n *TreeNode) UnmarshalJSON(data []byte) error {
	var probe struct {
		DirectoryPath *string `json:"directoryPath"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.DirectoryPath != nil {
		n.Directory = &DirectoryNode{}
		return json.Unmarshal(data, n.Directory)
	}
	n.File = &FileNode{}
	return json.Unmarshal(data, n.File)
}

// convertNodes maps the internal tree onto the serialization contract.
func convertNodes(nodes []*tree.Node) NestedCodeStructure {
	out := make(NestedCodeStructure, 0, len(nodes))
	for _, node := range nodes {
		if node.IsDir() {
			out = append(out, TreeNode{Directory: &DirectoryNode{
				DirectoryPath: node.Path,
				Children:      convertNodes(node.Children),
			}})
			continue
		}
		out = append(out, TreeNode{File: convertFile(node.File)})
	}
	return out
}

func convertFile(fs *coupling.FileStats) *FileNode {
	history := make([]CommitRecord, 0, len(fs.History))
	for i := range fs.History {
		history = append(history, convertCommit(&fs.History[i]))
	}
	return &FileNode{
		FilePath:                fs.Path,
		LinesOfCode:             fs.LineCount,
		GitHistory:              history,
		Contributors:            fs.SortedContributors(),
		RecentContributors:      fs.SortedRecentContributors(),
		RecentlyChangedTogether: convertCoChanges(fs.CoChangeCounts),
		RiskTier:                fs.Tier,
	}
}

func convertCommit(c *git.Commit) CommitRecord {
	return CommitRecord{
		Hash:                 c.Hash,
		AuthorName:           c.Author,
		TimestampEpochMillis: c.Timestamp.UnixMilli(),
		ChangedFiles:         c.Files,
		Message:              c.Message,
	}
}

// convertCoChanges orders partners by count descending, then path, so the
// strongest couplings surface first and output stays deterministic.
func convertCoChanges(counts map[string]int) []CoChangeEntry {
	entries := make([]CoChangeEntry, 0, len(counts))
	for path, count := range counts {
		entries = append(entries, CoChangeEntry{FilePath: path, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].FilePath < entries[j].FilePath
	})
	return entries
}

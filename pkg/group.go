package dupescan

import (
	"fmt"
)

// DuplicateGroup represents a group of files with identical content under
// the active precision. Files[0] is the anchor, the remaining entries appear
// in discovery order.
type DuplicateGroup struct {
	Files []*FileHandle `json:"files"`
	Count int           `json:"count"`
}

// Grouper partitions a file list into duplicate groups using a comparator
type Grouper struct {
	comparator *Comparator
}

// NewGrouper creates a grouper backed by the given comparator
func NewGrouper(comparator *Comparator) *Grouper {
	return &Grouper{comparator: comparator}
}

// FindDuplicates processes files in input order and returns duplicate groups
// in the order each group's anchor first appears. Every file lands in at most
// one group; files with no duplicates produce no group. A comparator error
// aborts the run, an unreadable file is never silently treated as "not a
// duplicate".
func (g *Grouper) FindDuplicates(files []*FileHandle) ([]DuplicateGroup, error) {
	defer VerboseEnter()()

	claimed := make(map[fileKey]struct{}, len(files))
	var groups []DuplicateGroup

	for i, anchor := range files {
		if _, ok := claimed[anchor.Identity()]; ok {
			continue
		}

		var members []*FileHandle
		for j, other := range files {
			if j == i {
				continue
			}
			if _, ok := claimed[other.Identity()]; ok {
				continue
			}

			same, err := g.comparator.Identical(anchor, other)
			if err != nil {
				return nil, fmt.Errorf("failed to compare %s with %s: %w", anchor.Path, other.Path, err)
			}
			if same {
				members = append(members, other)
			}
		}

		claimed[anchor.Identity()] = struct{}{}
		if len(members) == 0 {
			continue
		}

		group := DuplicateGroup{
			Files: append([]*FileHandle{anchor}, members...),
		}
		group.Count = len(group.Files)
		for _, member := range members {
			claimed[member.Identity()] = struct{}{}
		}
		groups = append(groups, group)
	}

	VerboseLog(1, "found %d duplicate groups among %d files", len(groups), len(files))

	return groups, nil
}

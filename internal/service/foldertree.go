package service

import (
	"github.com/and161185/notekeeper/internal/model"
	"github.com/gofrs/uuid/v5"
)

// BuildFolderTree links a flat, user-scoped folder list into a forest.
//
// The first pass indexes every folder by id so that a parent listed after its
// child still resolves; the second pass attaches each node to its parent in
// input order. Folders whose parent is nil, unknown or themselves become
// roots. The builder never traverses the result, so cyclic input terminates.
func BuildFolderTree(folders []model.Folder) []*model.FolderNode {
	nodes := make(map[uuid.UUID]*model.FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &model.FolderNode{Folder: f, Children: []*model.FolderNode{}}
	}

	roots := make([]*model.FolderNode, 0)
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID != nil && *f.ParentID != f.ID {
			if parent, ok := nodes[*f.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

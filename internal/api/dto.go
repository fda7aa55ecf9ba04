package api

// CreateFileRequest is the request body for creating a file.
type CreateFileRequest struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Parent  string `json:"parent,omitempty"`
}

// CreateFolderRequest is the request body for creating a folder.
type CreateFolderRequest struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// RenameRequest carries the new name for a file or folder.
type RenameRequest struct {
	Name string `json:"name"`
}

// UpdateFileRequest carries replacement content for a file.
type UpdateFileRequest struct {
	Content string `json:"content"`
}

// OpenFileRequest selects the file to open or close.
type OpenFileRequest struct {
	ID string `json:"id"`
}

// CreateSplitRequest optionally names the file shown in a new split.
type CreateSplitRequest struct {
	FileID string `json:"fileId,omitempty"`
}

// UpdateSplitRequest retargets a split or toggles its preview.
type UpdateSplitRequest struct {
	FileID         string `json:"fileId,omitempty"`
	PreviewVisible *bool  `json:"previewVisible,omitempty"`
}

// PreviewResponse is the rendered, link-resolved preview of a file.
type PreviewResponse struct {
	FileID string `json:"fileId"`
	Seq    uint64 `json:"seq"`
	HTML   string `json:"html"`
}

// CreatedResponse returns the id of a newly created entity.
type CreatedResponse struct {
	ID string `json:"id"`
}

// SplitResponse returns a newly created split descriptor.
type SplitResponse struct {
	ID             string `json:"id"`
	FileID         string `json:"fileId"`
	PreviewVisible bool   `json:"previewVisible"`
}

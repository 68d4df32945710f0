package model

type EntryItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	IsDir       bool   `json:"is_dir"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
	ContentType string `json:"content_type,omitempty"`
	ETag        string `json:"etag,omitempty"`
}

type ListRequest struct {
	Path      string `form:"path" binding:"required"`
	Recursive bool   `form:"recursive"`
	Hidden    bool   `form:"hidden"`
}

type ListResponse struct {
	Items []*EntryItem `json:"items"`
}

type StatRequest struct {
	Path string `form:"path" binding:"required"`
}

type StatResponse struct {
	Exist bool       `json:"exist"`
	Item  *EntryItem `json:"item,omitempty"`
}

type UploadResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

type MkdirRequest struct {
	Path string `json:"path" binding:"required"`
}

type DeleteRequest struct {
	Path      string `json:"path" binding:"required"`
	Recursive bool   `json:"recursive"`
}

type MoveRequest struct {
	Src       string `json:"src" binding:"required"`
	Dst       string `json:"dst" binding:"required"`
	Overwrite bool   `json:"overwrite"`
}

type CopyRequest struct {
	Src       string `json:"src" binding:"required"`
	Dst       string `json:"dst" binding:"required"`
	Overwrite bool   `json:"overwrite"`
}

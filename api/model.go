package api

// === Create Comment ===
type CreateCommentContent struct {
	CommentText string `json:"comment_text" binding:"required"`
}
type CreateCommentRequest struct {
	Content CreateCommentContent `json:"content" binding:"required"`
}

// === Get Comment ===
type GetCommentPositions struct {
	ID int64 `json:"id" binding:"required"`
}
type GetCommentRequest struct {
	Positions GetCommentPositions `json:"positions" binding:"required"`
}

// === Update Comment ===
type UpdateCommentRequest struct {
	Positions GetCommentPositions  `json:"positions" binding:"required"`
	Content   CreateCommentContent `json:"content" binding:"required"`
}

// === Get Annotation ===
type GetAnnotationPositions struct {
	ID int64 `json:"id" binding:"required"`
}
type GetAnnotationRequest struct {
	Positions GetAnnotationPositions `json:"positions" binding:"required"`
}

// === Update Storage Backend ===
type UpdateBackendContent struct {
	Backend  string `json:"backend" binding:"required"`
	DataPath string `json:"data_path"` // optional, keeps current path when empty
}
type UpdateBackendRequest struct {
	Content UpdateBackendContent `json:"content" binding:"required"`
}

// === Generic Error Response ===
type ErrorResponse struct {
	Error string `json:"error"`
}
